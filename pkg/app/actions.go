package app

import "tableflip.dev/medtrack/pkg/glyph"

// Action is a user intent applied with App.Dispatch.
type Action interface {
	isAction()
}

type (
	// Navigate switches screens and closes any open dialog.
	Navigate struct{ To View }

	OpenAddMed  struct{}
	OpenEditMed struct{ ID string }
	SetName     struct{ Value string }
	SetDosage   struct{ Value string }
	SetIcon     struct{ Value glyph.Icon }
	SetColor    struct{ Value glyph.Color }
	// SubmitMed saves the form as a new or edited medication.
	SubmitMed struct{}

	RequestDeleteMed struct{ ID string }
	ConfirmDeleteMed struct{}
	CancelDeleteMed  struct{}

	// StageLog opens the time dialog for a medication.
	StageLog   struct{ MedicationID string }
	SetLogTime struct{ Value string }
	ConfirmLog struct{}
	CancelLog  struct{}

	RequestDeleteLog struct{ ID string }
	ConfirmDeleteLog struct{}
	CancelDeleteLog  struct{}
)

func (Navigate) isAction()         {}
func (OpenAddMed) isAction()       {}
func (OpenEditMed) isAction()      {}
func (SetName) isAction()          {}
func (SetDosage) isAction()        {}
func (SetIcon) isAction()          {}
func (SetColor) isAction()         {}
func (SubmitMed) isAction()        {}
func (RequestDeleteMed) isAction() {}
func (ConfirmDeleteMed) isAction() {}
func (CancelDeleteMed) isAction()  {}
func (StageLog) isAction()         {}
func (SetLogTime) isAction()       {}
func (ConfirmLog) isAction()       {}
func (CancelLog) isAction()        {}
func (RequestDeleteLog) isAction() {}
func (ConfirmDeleteLog) isAction() {}
func (CancelDeleteLog) isAction()  {}
