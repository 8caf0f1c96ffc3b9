package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/commands/options"
	"tableflip.dev/medtrack/pkg/runner/log"
)

func addTake(topLevel *cobra.Command) {
	ao := &options.AtOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "take [ID|NAME]",
		Aliases: []string{"log"},
		Short:   "Log a dose taken today. With no medication, pick one interactively.",
		Example: `
medtrack take Zoloft
medtrack take Advil --at 08:30
medtrack take
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeMedications,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := ao.Validate(); err != nil {
				return output.HandleError(err)
			}
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := log.Take{
				App:    a,
				At:     ao.At,
				ShowID: ido.ShowID,
				JSON:   output.JSON,
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				s.Ref = args[0]
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddAtArgs(cmd, ao)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}

func addToday(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the doses logged today, most recent first.",
		Example: `
medtrack today
medtrack today --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := log.Today{
				App:    a,
				ShowID: ido.ShowID,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}

func addForget(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "forget LOG_ID",
		Short: "Remove a dose logged today. Find ids with 'today --show-id'.",
		Example: `
medtrack forget 7f1c2d4e-0b6a-4c3e-9d55-2a8f5e0c1b77
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := log.Forget{
				App: a,
				ID:  args[0],
				Yes: co.Yes,
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}

func addHistory(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past doses grouped by day.",
		Example: `
medtrack history
medtrack history --window 3d
medtrack history --month
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			window, err := wo.GetWindow()
			if err != nil {
				return output.HandleError(err)
			}
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := log.History{
				App:    a,
				Window: window,
				Month:  wo.Month,
				ShowID: ido.ShowID,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}
