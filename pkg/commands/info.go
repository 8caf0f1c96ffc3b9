package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the store and what it holds.",
		Example: `
medtrack info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			a, cfg, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config: cfg,
				App:    a,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
