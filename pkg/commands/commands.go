package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/commands/options"
	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/store"
	"tableflip.dev/medtrack/pkg/timeutil"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "medtrack",
		Short: base.Wrap80("Track the medications you take, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addMeds(topLevel)
	addTake(topLevel)
	addToday(topLevel)
	addForget(topLevel)
	addHistory(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}

// open loads the configured store and the app over it.
func open() (*app.App, store.Config, store.Persistence, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	kv, err := store.Load(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	a, err := app.Open(kv, timeutil.System{}, entry.NewID)
	if err != nil {
		return nil, nil, nil, err
	}
	return a, cfg, kv, nil
}
