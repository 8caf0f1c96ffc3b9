package app

import (
	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/glyph"
)

// View names a screen.
type View string

const (
	ViewHome    View = "home"
	ViewMeds    View = "meds"
	ViewAddMed  View = "addMed"
	ViewEditMed View = "editMed"
)

// Form is the in-progress add/edit medication form.
type Form struct {
	// EditingID is empty when adding.
	EditingID string
	Name      string
	Dosage    string
	Icon      glyph.Icon
	Color     glyph.Color
}

func (f Form) Details() entry.Details {
	return entry.Details{Name: f.Name, Dosage: f.Dosage, Icon: f.Icon, Color: f.Color}
}

func blankForm() Form {
	return Form{Icon: glyph.DefaultIcon, Color: glyph.DefaultColor}
}

// PendingLog is a staged quick-log awaiting confirmation.
type PendingLog struct {
	Medication entry.Medication
	// Time is the HH:MM time of day to log at.
	Time string
}

// State is everything the front-ends render from. Lists are copies; the
// catalog and journal own the data.
type State struct {
	View View
	Form Form

	Pending   *PendingLog
	DeleteLog *entry.Log
	DeleteMed *entry.Medication

	Medications []entry.Medication
	Logs        []entry.Log
}

// Modal reports whether a dialog is open over the current view.
func (s State) Modal() bool {
	return s.Pending != nil || s.DeleteLog != nil || s.DeleteMed != nil
}
