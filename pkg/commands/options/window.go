package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Window string
	Month  bool
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", timeutil.DefaultWindow,
		`How far back to look, example: --window="2w3d".`)
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show a calendar of the current month instead.")
}

func (o *WindowOptions) GetWindow() (time.Duration, error) {
	d, _, err := timeutil.ParseWindow(o.Window)
	return d, err
}
