package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/timeutil"
)

// AtOptions
type AtOptions struct {
	At string
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.At, "at", "",
		`Time of day the dose was taken, example: --at="08:30". Defaults to now.`)
}

func (o *AtOptions) Validate() error {
	if o.At == "" {
		return nil
	}
	_, _, err := timeutil.ParseClock(o.At)
	return err
}
