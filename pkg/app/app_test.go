package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/journal"
	"tableflip.dev/medtrack/pkg/store"
)

var now = time.Date(2025, time.March, 4, 14, 30, 0, 0, time.UTC)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newApp(t *testing.T, kv store.Persistence) (*App, *testClock) {
	t.Helper()
	clock := &testClock{t: now}
	a, err := Open(kv, clock, counter())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return a, clock
}

func dispatch(t *testing.T, a *App, acts ...Action) {
	t.Helper()
	for _, act := range acts {
		if err := a.Dispatch(act); err != nil {
			t.Fatalf("dispatch %T: %v", act, err)
		}
	}
}

func addMed(t *testing.T, a *App, name, dosage string) entry.Medication {
	t.Helper()
	dispatch(t, a,
		OpenAddMed{},
		SetName{Value: name},
		SetDosage{Value: dosage},
		SetIcon{Value: glyph.Pill},
		SetColor{Value: glyph.Blue},
		SubmitMed{},
	)
	meds := a.State().Medications
	return meds[len(meds)-1]
}

func TestStartsOnHome(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	s := a.State()
	if s.View != ViewHome {
		t.Fatalf("expected home view, got %s", s.View)
	}
	if s.Modal() {
		t.Fatalf("no dialog should be open")
	}
}

func TestAddMedicationFlow(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	dispatch(t, a, Navigate{To: ViewMeds}, OpenAddMed{})
	s := a.State()
	if s.View != ViewAddMed || s.Form.Icon != glyph.Pill || s.Form.Color != glyph.Blue {
		t.Fatalf("unexpected form state %+v", s)
	}

	m := addMed(t, a, "Zoloft", "25mg")
	s = a.State()
	if s.View != ViewMeds {
		t.Fatalf("expected return to meds, got %s", s.View)
	}
	if len(s.Medications) != 1 || m.Name != "Zoloft" || m.Dosage != "25mg" {
		t.Fatalf("unexpected medications %+v", s.Medications)
	}
}

func TestSubmitBlankNameStaysOnForm(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	dispatch(t, a, OpenAddMed{}, SetName{Value: "  "}, SubmitMed{})
	s := a.State()
	if s.View != ViewAddMed {
		t.Fatalf("expected form to stay open, got %s", s.View)
	}
	if len(s.Medications) != 0 {
		t.Fatalf("blank name must not add")
	}
}

func TestEditMedicationFlow(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	first := addMed(t, a, "Zoloft", "25mg")
	addMed(t, a, "Advil", "200mg")

	dispatch(t, a, OpenEditMed{ID: first.ID})
	s := a.State()
	if s.View != ViewEditMed || s.Form.Name != "Zoloft" || s.Form.EditingID != first.ID {
		t.Fatalf("form not prefilled: %+v", s.Form)
	}
	dispatch(t, a, SetDosage{Value: "50mg"}, SubmitMed{})
	s = a.State()
	if s.Medications[0].ID != first.ID || s.Medications[0].Dosage != "50mg" {
		t.Fatalf("edit not applied in place: %+v", s.Medications)
	}
	if s.Medications[1].Name != "Advil" {
		t.Fatalf("other medication changed: %+v", s.Medications[1])
	}
}

func TestOpenEditUnknownIsNoop(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	dispatch(t, a, Navigate{To: ViewMeds}, OpenEditMed{ID: "nope"})
	if v := a.State().View; v != ViewMeds {
		t.Fatalf("expected to stay on meds, got %s", v)
	}
}

func TestDeleteMedicationNeedsConfirm(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	m := addMed(t, a, "Zoloft", "25mg")

	dispatch(t, a, RequestDeleteMed{ID: m.ID})
	if s := a.State(); s.DeleteMed == nil || len(s.Medications) != 1 {
		t.Fatalf("request should only open the dialog")
	}
	dispatch(t, a, CancelDeleteMed{})
	if s := a.State(); s.DeleteMed != nil || len(s.Medications) != 1 {
		t.Fatalf("cancel should keep the medication")
	}
	dispatch(t, a, RequestDeleteMed{ID: m.ID}, ConfirmDeleteMed{})
	if s := a.State(); s.DeleteMed != nil || len(s.Medications) != 0 {
		t.Fatalf("confirm should delete, got %+v", s.Medications)
	}
}

func TestQuickLogStageConfirm(t *testing.T) {
	kv := store.NewMemory()
	a, _ := newApp(t, kv)
	m := addMed(t, a, "Zoloft", "25mg")
	dispatch(t, a, Navigate{To: ViewHome})

	dispatch(t, a, StageLog{MedicationID: m.ID})
	s := a.State()
	if s.Pending == nil || s.Pending.Time != "14:30" {
		t.Fatalf("expected staged log at 14:30, got %+v", s.Pending)
	}
	if len(s.Logs) != 0 {
		t.Fatalf("staging must not log")
	}
	if _, ok, _ := kv.Get(journal.Key); ok {
		t.Fatalf("staging must not persist")
	}

	dispatch(t, a, ConfirmLog{})
	s = a.State()
	if s.Pending != nil {
		t.Fatalf("confirm should clear the staged log")
	}
	if len(s.Logs) != 1 {
		t.Fatalf("expected one log, got %d", len(s.Logs))
	}
	l := s.Logs[0]
	want := time.Date(2025, time.March, 4, 14, 30, 0, 0, time.UTC)
	if !l.Timestamp.Equal(want) || l.Name != "Zoloft" || l.Dosage != "25mg" {
		t.Fatalf("unexpected log %+v", l)
	}
}

func TestQuickLogUsesConfirmDateAndAdjustedTime(t *testing.T) {
	a, clock := newApp(t, store.NewMemory())
	m := addMed(t, a, "Zoloft", "25mg")

	dispatch(t, a, StageLog{MedicationID: m.ID}, SetLogTime{Value: "08:15"})
	clock.t = now.AddDate(0, 0, 1)
	dispatch(t, a, ConfirmLog{})

	logs := a.State().Logs
	want := time.Date(2025, time.March, 5, 8, 15, 0, 0, time.UTC)
	if len(logs) != 1 || !logs[0].Timestamp.Equal(want) {
		t.Fatalf("expected log at %v, got %+v", want, logs)
	}
}

func TestQuickLogSnapshotsAtConfirmation(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	m := addMed(t, a, "Zoloft", "25mg")

	dispatch(t, a, StageLog{MedicationID: m.ID})
	if _, _, err := a.Catalog.Edit(m.ID, entry.Details{Name: "Zoloft", Dosage: "50mg"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	dispatch(t, a, ConfirmLog{})
	if got := a.State().Logs[0].Dosage; got != "50mg" {
		t.Fatalf("expected fields at confirmation, got %q", got)
	}

	if _, _, err := a.Catalog.Edit(m.ID, entry.Details{Name: "Sertraline", Dosage: "100mg"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := a.State().Logs[0]; got.Name != "Zoloft" || got.Dosage != "50mg" {
		t.Fatalf("later edits must not change past logs, got %+v", got)
	}
}

func TestCancelLogHasNoEffect(t *testing.T) {
	kv := store.NewMemory()
	a, _ := newApp(t, kv)
	m := addMed(t, a, "Zoloft", "25mg")
	dispatch(t, a, StageLog{MedicationID: m.ID}, SetLogTime{Value: "09:00"}, CancelLog{})
	s := a.State()
	if s.Pending != nil || len(s.Logs) != 0 {
		t.Fatalf("cancel should discard the staged log")
	}
	if _, ok, _ := kv.Get(journal.Key); ok {
		t.Fatalf("cancel must not persist")
	}
	dispatch(t, a, ConfirmLog{})
	if len(a.State().Logs) != 0 {
		t.Fatalf("confirm without staging must be a no-op")
	}
}

func TestConfirmInvalidTimeKeepsStaged(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	m := addMed(t, a, "Zoloft", "25mg")
	dispatch(t, a, StageLog{MedicationID: m.ID}, SetLogTime{Value: "25:99"})
	err := a.Dispatch(ConfirmLog{})
	if !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	s := a.State()
	if s.Pending == nil || len(s.Logs) != 0 {
		t.Fatalf("invalid time should keep the dialog open and log nothing")
	}
}

func TestDeleteLogNeedsConfirm(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	addMed(t, a, "Zoloft", "25mg")
	l, err := a.QuickLog("zoloft", "10:00")
	if err != nil {
		t.Fatalf("quick log: %v", err)
	}

	dispatch(t, a, RequestDeleteLog{ID: l.ID})
	if s := a.State(); s.DeleteLog == nil || s.DeleteLog.ID != l.ID {
		t.Fatalf("expected delete dialog for %s", l.ID)
	}
	dispatch(t, a, CancelDeleteLog{})
	if len(a.State().Logs) != 1 {
		t.Fatalf("cancel should keep the log")
	}
	dispatch(t, a, RequestDeleteLog{ID: l.ID}, ConfirmDeleteLog{})
	if len(a.State().Logs) != 0 {
		t.Fatalf("confirm should delete the log")
	}
}

func TestDeleteMedicationKeepsLogs(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	m := addMed(t, a, "Zoloft", "25mg")
	if _, err := a.QuickLog(m.ID, ""); err != nil {
		t.Fatalf("quick log: %v", err)
	}
	dispatch(t, a, RequestDeleteMed{ID: m.ID}, ConfirmDeleteMed{})
	if logs := a.State().Logs; len(logs) != 1 || logs[0].Name != "Zoloft" {
		t.Fatalf("history must survive medication delete, got %+v", logs)
	}
}

func TestQuickLogUnknownMedication(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	if _, err := a.QuickLog("nothing", ""); !errors.Is(err, ErrUnknownMedication) {
		t.Fatalf("expected ErrUnknownMedication, got %v", err)
	}
}

func TestQuickLogInvalidTimeClearsStage(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	addMed(t, a, "Zoloft", "25mg")
	if _, err := a.QuickLog("Zoloft", "noon"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	if a.State().Pending != nil {
		t.Fatalf("QuickLog should not leave a staged log behind")
	}
}

func TestNavigateClosesDialogs(t *testing.T) {
	a, _ := newApp(t, store.NewMemory())
	m := addMed(t, a, "Zoloft", "25mg")
	dispatch(t, a, StageLog{MedicationID: m.ID}, Navigate{To: ViewHome})
	if a.State().Modal() {
		t.Fatalf("navigation should close dialogs")
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	kv := store.NewMemory()
	a, _ := newApp(t, kv)
	other, _ := newApp(t, kv)
	addMed(t, other, "Zoloft", "25mg")
	if _, err := other.QuickLog("Zoloft", ""); err != nil {
		t.Fatalf("quick log: %v", err)
	}

	if err := a.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	s := a.State()
	if len(s.Medications) != 1 || len(s.Logs) != 1 {
		t.Fatalf("expected other session's writes, got %d meds %d logs", len(s.Medications), len(s.Logs))
	}
}

func TestOpenFailsOnMalformedStore(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(journal.Key, "nope")
	if _, err := Open(kv, nil, nil); !errors.Is(err, journal.ErrLoad) {
		t.Fatalf("expected journal.ErrLoad, got %v", err)
	}
}

func TestScenarioYesterdayAndToday(t *testing.T) {
	kv := store.NewMemory()
	yesterday := entry.NewLog("y", entry.Details{Name: "Old"}, entry.At(now.AddDate(0, 0, -1)))
	today := entry.NewLog("t", entry.Details{Name: "New"}, entry.At(now.Add(-time.Hour)))
	data, _ := json.Marshal([]*entry.Log{yesterday, today})
	_ = kv.Set(journal.Key, string(data))

	a, _ := newApp(t, kv)
	if logs := a.State().Logs; len(logs) != 1 || logs[0].ID != "t" {
		t.Fatalf("expected only today's entry, got %+v", logs)
	}
	dispatch(t, a, RequestDeleteLog{ID: "t"}, ConfirmDeleteLog{})

	again, _ := newApp(t, kv)
	if len(again.State().Logs) != 0 {
		t.Fatalf("expected empty today")
	}
	raw, _, _ := kv.Get(journal.Key)
	var stored []entry.Log
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != "y" || stored[0].Name != "Old" {
		t.Fatalf("yesterday should be untouched, got %+v", stored)
	}
}
