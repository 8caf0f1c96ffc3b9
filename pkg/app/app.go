// Package app ties the catalog and journal to an explicit view state so the
// CLI, terminal UI and MCP server share one set of operations.
package app

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/medtrack/pkg/catalog"
	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/journal"
	"tableflip.dev/medtrack/pkg/store"
	"tableflip.dev/medtrack/pkg/timeutil"
)

var (
	// ErrInvalidTime is returned by ConfirmLog when the staged time is not HH:MM.
	ErrInvalidTime = errors.New("app: invalid time")
	// ErrUnknownMedication is returned when a reference matches no medication.
	ErrUnknownMedication = errors.New("app: unknown medication")
)

type App struct {
	Catalog *catalog.Catalog
	Journal *journal.Journal
	Clock   timeutil.Clock

	state State
	last  entry.Log
}

// Open loads the catalog and journal from kv. A parse failure of either is
// fatal and returned as is.
func Open(kv store.Persistence, clock timeutil.Clock, newID func() string) (*App, error) {
	if clock == nil {
		clock = timeutil.System{}
	}
	c, err := catalog.Load(kv, newID)
	if err != nil {
		return nil, err
	}
	j, err := journal.Load(kv, clock, newID)
	if err != nil {
		return nil, err
	}
	return New(c, j, clock), nil
}

func New(c *catalog.Catalog, j *journal.Journal, clock timeutil.Clock) *App {
	return &App{
		Catalog: c,
		Journal: j,
		Clock:   clock,
		state:   State{View: ViewHome, Form: blankForm()},
	}
}

// State returns the current state with fresh copies of both lists.
func (a *App) State() State {
	s := a.state
	s.Medications = a.Catalog.List()
	s.Logs = a.Journal.Today()
	return s
}

// Reload re-reads both lists from the store, e.g. after another session
// wrote to it or the day rolled over.
func (a *App) Reload() error {
	if err := a.Catalog.Reload(); err != nil {
		return err
	}
	return a.Journal.Reload()
}

// Resolve finds a medication by id or name.
func (a *App) Resolve(ref string) (entry.Medication, error) {
	m, ok := a.Catalog.Find(ref)
	if !ok {
		return entry.Medication{}, fmt.Errorf("%w: %q", ErrUnknownMedication, ref)
	}
	return m, nil
}

// QuickLog stages ref, optionally adjusts the time (HH:MM), and confirms.
func (a *App) QuickLog(ref, at string) (entry.Log, error) {
	m, err := a.Resolve(ref)
	if err != nil {
		return entry.Log{}, err
	}
	if err := a.Dispatch(StageLog{MedicationID: m.ID}); err != nil {
		return entry.Log{}, err
	}
	if strings.TrimSpace(at) != "" {
		if err := a.Dispatch(SetLogTime{Value: at}); err != nil {
			return entry.Log{}, err
		}
	}
	if err := a.Dispatch(ConfirmLog{}); err != nil {
		_ = a.Dispatch(CancelLog{})
		return entry.Log{}, err
	}
	return a.last, nil
}

// Dispatch applies act to the state. Validation and not-found cases are
// silent no-ops; errors are storage failures or ErrInvalidTime.
func (a *App) Dispatch(act Action) error {
	s := &a.state
	switch act := act.(type) {
	case Navigate:
		s.Pending, s.DeleteLog, s.DeleteMed = nil, nil, nil
		switch act.To {
		case ViewHome, ViewMeds:
			s.View = act.To
		case ViewAddMed:
			s.View = ViewAddMed
			s.Form = blankForm()
		}

	case OpenAddMed:
		s.View = ViewAddMed
		s.Form = blankForm()

	case OpenEditMed:
		m, ok := a.Catalog.Get(act.ID)
		if !ok {
			return nil
		}
		s.View = ViewEditMed
		s.Form = Form{EditingID: m.ID, Name: m.Name, Dosage: m.Dosage, Icon: m.Icon, Color: m.Color}

	case SetName:
		s.Form.Name = act.Value
	case SetDosage:
		s.Form.Dosage = act.Value
	case SetIcon:
		s.Form.Icon = act.Value
	case SetColor:
		s.Form.Color = act.Value

	case SubmitMed:
		if strings.TrimSpace(s.Form.Name) == "" {
			return nil
		}
		var err error
		if s.Form.EditingID != "" {
			_, _, err = a.Catalog.Edit(s.Form.EditingID, s.Form.Details())
		} else {
			_, _, err = a.Catalog.Add(s.Form.Details())
		}
		if err != nil {
			return err
		}
		s.View = ViewMeds

	case RequestDeleteMed:
		if m, ok := a.Catalog.Get(act.ID); ok {
			s.DeleteMed = &m
		}
	case ConfirmDeleteMed:
		if s.DeleteMed == nil {
			return nil
		}
		id := s.DeleteMed.ID
		s.DeleteMed = nil
		if _, err := a.Catalog.Delete(id); err != nil {
			return err
		}
	case CancelDeleteMed:
		s.DeleteMed = nil

	case StageLog:
		m, ok := a.Catalog.Get(act.MedicationID)
		if !ok {
			return nil
		}
		s.Pending = &PendingLog{Medication: m, Time: timeutil.FormatClock(a.Clock.Now())}
	case SetLogTime:
		if s.Pending != nil {
			s.Pending.Time = act.Value
		}
	case ConfirmLog:
		if s.Pending == nil {
			return nil
		}
		hour, minute, err := timeutil.ParseClock(s.Pending.Time)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTime, err)
		}
		if a.Journal.Stale() {
			if err := a.Journal.Reload(); err != nil {
				return err
			}
		}
		// Today's date at confirmation, not the date the dialog opened.
		at := timeutil.At(a.Clock.Now(), hour, minute)
		details := s.Pending.Medication.Details
		if m, ok := a.Catalog.Get(s.Pending.Medication.ID); ok {
			details = m.Details
		}
		l, err := a.Journal.Add(details, at)
		if err != nil {
			return err
		}
		a.last = l
		s.Pending = nil
	case CancelLog:
		s.Pending = nil

	case RequestDeleteLog:
		if l, ok := a.Journal.Get(act.ID); ok {
			s.DeleteLog = &l
		}
	case ConfirmDeleteLog:
		if s.DeleteLog == nil {
			return nil
		}
		id := s.DeleteLog.ID
		s.DeleteLog = nil
		if _, err := a.Journal.Delete(id); err != nil {
			return err
		}
	case CancelDeleteLog:
		s.DeleteLog = nil

	default:
		return fmt.Errorf("app: unknown action %T", act)
	}
	return nil
}
