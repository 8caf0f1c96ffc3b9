package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/store"
)

type Info struct {
	Config store.Config
	App    *app.App
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("MEDTRACK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "MEDTRACK_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "MEDTRACK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if f := store.ConfigFile(n.Config); f != "" {
		_, _ = fmt.Fprintln(out, "Config.file: ", f)
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.Backend())

	if n.App == nil {
		return errors.New("failed to open the medication store")
	}

	s := n.App.State()
	_, _ = fmt.Fprintf(out, "Medications: %d\n", len(s.Medications))
	_, _ = fmt.Fprintf(out, "Doses today: %d\n", len(s.Logs))
	return nil
}
