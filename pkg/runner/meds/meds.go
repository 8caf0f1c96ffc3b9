// Package meds runs the medication catalog commands.
package meds

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/printers"
	"tableflip.dev/medtrack/pkg/prompt"
)

var errNoApp = errors.New("meds: no app configured")

// List prints the catalog.
type List struct {
	App    *app.App
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	meds := n.App.State().Medications
	if n.JSON {
		return pp.JSON(meds)
	}
	pp.Medications(meds)
	return nil
}

// Add creates a medication through the add form.
type Add struct {
	App    *app.App
	Name   string
	Dosage string
	Icon   string
	Color  string
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	before := len(n.App.State().Medications)
	err := dispatch(n.App,
		app.OpenAddMed{},
		app.SetName{Value: n.Name},
		app.SetDosage{Value: n.Dosage},
		app.SetIcon{Value: glyph.ParseIcon(n.Icon)},
		app.SetColor{Value: glyph.ParseColor(n.Color)},
		app.SubmitMed{},
	)
	if err != nil {
		return err
	}
	s := n.App.State()
	if len(s.Medications) == before {
		return errors.New("meds: a name is required")
	}
	return show(n.App, n.ShowID, n.JSON, n.Out, s.Medications[len(s.Medications)-1])
}

// Edit changes the fields that are set; nil fields keep their value.
type Edit struct {
	App    *app.App
	Ref    string
	Name   *string
	Dosage *string
	Icon   *string
	Color  *string
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	m, err := n.App.Resolve(n.Ref)
	if err != nil {
		return err
	}
	acts := []app.Action{app.OpenEditMed{ID: m.ID}}
	if n.Name != nil {
		acts = append(acts, app.SetName{Value: *n.Name})
	}
	if n.Dosage != nil {
		acts = append(acts, app.SetDosage{Value: *n.Dosage})
	}
	if n.Icon != nil {
		acts = append(acts, app.SetIcon{Value: glyph.ParseIcon(*n.Icon)})
	}
	if n.Color != nil {
		acts = append(acts, app.SetColor{Value: glyph.ParseColor(*n.Color)})
	}
	acts = append(acts, app.SubmitMed{})
	if err := dispatch(n.App, acts...); err != nil {
		return err
	}
	if n.App.State().View == app.ViewEditMed {
		_ = n.App.Dispatch(app.Navigate{To: app.ViewMeds})
		return errors.New("meds: a name is required")
	}
	updated, _ := n.App.Catalog.Get(m.ID)
	return show(n.App, n.ShowID, n.JSON, n.Out, updated)
}

// Remove deletes a medication after confirmation. Past logs are kept.
type Remove struct {
	App *app.App
	Ref string
	// Yes skips the confirmation prompt.
	Yes bool
	In  io.Reader
	Out io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	m, err := n.App.Resolve(n.Ref)
	if err != nil {
		return err
	}
	if err := n.App.Dispatch(app.RequestDeleteMed{ID: m.ID}); err != nil {
		return err
	}
	if !n.Yes {
		ok, err := prompt.Confirm(fmt.Sprintf("Delete medication %s", m.Label()), n.In, n.Out)
		if err != nil {
			return err
		}
		if !ok {
			return n.App.Dispatch(app.CancelDeleteMed{})
		}
	}
	if err := n.App.Dispatch(app.ConfirmDeleteMed{}); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "deleted %s\n", m.Label())
	return nil
}

func dispatch(a *app.App, acts ...app.Action) error {
	for _, act := range acts {
		if err := a.Dispatch(act); err != nil {
			return err
		}
	}
	return nil
}

func show(a *app.App, showID, asJSON bool, out io.Writer, changed interface{}) error {
	pp := printers.PrettyPrint{ShowID: showID, Out: out}
	if asJSON {
		return pp.JSON(changed)
	}
	pp.Medications(a.State().Medications)
	return nil
}
