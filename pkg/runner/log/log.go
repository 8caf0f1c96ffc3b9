// Package log runs the intake journal commands.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/printers"
	"tableflip.dev/medtrack/pkg/prompt"
	"tableflip.dev/medtrack/pkg/timeutil"
)

var errNoApp = errors.New("log: no app configured")

// Take logs a dose. With no Ref the medication and time are prompted for.
type Take struct {
	App *app.App
	Ref string
	// At is HH:MM today; empty means now.
	At     string
	ShowID bool
	JSON   bool
	In     io.Reader
	Out    io.Writer
}

func (n *Take) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	ref, at := n.Ref, n.At
	if ref == "" {
		m, err := prompt.SelectMedication(n.App.State().Medications, n.In, n.Out)
		if err != nil {
			return err
		}
		ref = m.ID
		if at == "" {
			at, err = prompt.Time(timeutil.FormatClock(n.App.Clock.Now()), n.In, n.Out)
			if err != nil {
				return err
			}
		}
	}

	l, err := n.App.QuickLog(ref, at)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(l)
	}
	pp.Logs([]entry.Log{l})
	return nil
}

// Today prints today's doses, most recent first.
type Today struct {
	App    *app.App
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Today) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	logs := n.App.State().Logs
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if n.JSON {
		return pp.JSON(logs)
	}
	pp.Today(n.App.Clock.Now(), logs)
	return nil
}

// Forget removes one of today's doses.
type Forget struct {
	App *app.App
	ID  string
	Yes bool
	In  io.Reader
	Out io.Writer
}

func (n *Forget) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	l, ok := n.App.Journal.Get(n.ID)
	if !ok {
		return fmt.Errorf("log: no dose %q logged today", n.ID)
	}
	if err := n.App.Dispatch(app.RequestDeleteLog{ID: l.ID}); err != nil {
		return err
	}
	if !n.Yes {
		ok, err := prompt.Confirm(fmt.Sprintf("Forget %s at %s", l.Label(), l.Timestamp.Clock()), n.In, n.Out)
		if err != nil {
			return err
		}
		if !ok {
			return n.App.Dispatch(app.CancelDeleteLog{})
		}
	}
	if err := n.App.Dispatch(app.ConfirmDeleteLog{}); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "forgot %s\n", l.Label())
	return nil
}

// History prints past doses, grouped by day or as a month calendar.
type History struct {
	App    *app.App
	Window time.Duration
	// Month switches to a calendar of the current month.
	Month  bool
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *History) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	now := n.App.Clock.Now()
	since := timeutil.WindowStart(now, n.Window)
	if n.Month {
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	logs, err := n.App.Journal.History(since)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	switch {
	case n.JSON:
		return pp.JSON(logs)
	case n.Month:
		pp.Calendar(now, logs)
	default:
		pp.History(logs)
	}
	return nil
}
