package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/commands/options"
	"tableflip.dev/medtrack/pkg/runner/meds"
)

func addMeds(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "meds",
		Aliases: []string{"medications"},
		Short:   "List and manage medications.",
		Example: `
medtrack meds
medtrack meds add Zoloft --dosage 25mg --color rose
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := meds.List{
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

	addMedsAdd(cmd)
	addMedsEdit(cmd)
	addMedsRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addMedsAdd(topLevel *cobra.Command) {
	mo := &options.MedicationOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a medication.",
		Example: `
medtrack meds add Advil
medtrack meds add "Vitamin D" --dosage 1000IU --icon tablet --color amber
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := mo.Validate(); err != nil {
				return output.HandleError(err)
			}
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := meds.Add{
				App:    a,
				Name:   args[0],
				Dosage: mo.Dosage,
				Icon:   mo.Icon,
				Color:  mo.Color,
				ShowID: ido.ShowID,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMedicationArgs(cmd, mo, false)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}

func addMedsEdit(topLevel *cobra.Command) {
	mo := &options.MedicationOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit ID|NAME",
		Short: "Change a medication. Doses already logged keep their details.",
		Example: `
medtrack meds edit Zoloft --dosage 50mg
medtrack meds edit Zoloft --name Sertraline
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMedications,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := mo.Validate(); err != nil {
				return output.HandleError(err)
			}
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			name, dosage, icon, color := mo.Changed(cmd)
			s := meds.Edit{
				App:    a,
				Ref:    args[0],
				Name:   name,
				Dosage: dosage,
				Icon:   icon,
				Color:  color,
				ShowID: ido.ShowID,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMedicationArgs(cmd, mo, true)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}

func addMedsRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm ID|NAME",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a medication. Doses already logged are kept.",
		Example: `
medtrack meds rm Advil
medtrack meds rm Advil --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMedications,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, _, _, err := open()
			if err != nil {
				return output.HandleError(err)
			}
			s := meds.Remove{
				App: a,
				Ref: args[0],
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
