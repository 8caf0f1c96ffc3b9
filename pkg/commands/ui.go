package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/medtrack/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
medtrack ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, kv, err := open()
			if err != nil {
				return err
			}
			return teaui.Run(a, kv)
		},
	}

	topLevel.AddCommand(cmd)
}
