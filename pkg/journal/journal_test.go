package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/store"
	"tableflip.dev/medtrack/pkg/timeutil"
)

var (
	loc = time.FixedZone("test", 2*3600)
	now = time.Date(2025, time.March, 4, 16, 45, 0, 0, loc)
)

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("log-%d", n)
	}
}

// movable is a clock tests can advance.
type movable struct{ t time.Time }

func (m *movable) Now() time.Time { return m.t }

func seed(t *testing.T, kv store.Persistence, logs ...*entry.Log) {
	t.Helper()
	data, err := json.Marshal(logs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := kv.Set(Key, string(data)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func persisted(t *testing.T, kv store.Persistence) []entry.Log {
	t.Helper()
	raw, ok, err := kv.Get(Key)
	if err != nil || !ok {
		t.Fatalf("expected persisted history, ok=%v err=%v", ok, err)
	}
	var logs []entry.Log
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return logs
}

func logAt(id, name string, at time.Time) *entry.Log {
	return entry.NewLog(id, entry.Details{Name: name, Icon: glyph.Pill, Color: glyph.Blue}, entry.At(at))
}

func TestLoadEmpty(t *testing.T) {
	j, err := Load(store.NewMemory(), timeutil.Fixed(now), counter())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(j.Today()) != 0 {
		t.Fatalf("expected empty journal")
	}
}

func TestLoadKeepsOnlyTodaySortedRecentFirst(t *testing.T) {
	kv := store.NewMemory()
	seed(t, kv,
		logAt("y", "Yesterday", now.AddDate(0, 0, -1)),
		logAt("a", "Morning", time.Date(2025, time.March, 4, 8, 0, 0, 0, loc)),
		logAt("b", "Noon", time.Date(2025, time.March, 4, 12, 0, 0, 0, loc)),
	)
	j, err := Load(kv, timeutil.Fixed(now), counter())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	today := j.Today()
	if len(today) != 2 {
		t.Fatalf("expected two entries, got %+v", today)
	}
	if today[0].ID != "b" || today[1].ID != "a" {
		t.Fatalf("expected most recent first, got %s, %s", today[0].ID, today[1].ID)
	}
}

func TestBoundaryIsInclusive(t *testing.T) {
	kv := store.NewMemory()
	midnight := timeutil.StartOfDay(now)
	seed(t, kv,
		logAt("at", "AtMidnight", midnight),
		logAt("before", "JustBefore", midnight.Add(-time.Millisecond)),
	)
	j, err := Load(kv, timeutil.Fixed(now), counter())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	today := j.Today()
	if len(today) != 1 || today[0].ID != "at" {
		t.Fatalf("expected only the midnight entry, got %+v", today)
	}
}

func TestAddPrependsAndPersists(t *testing.T) {
	kv := store.NewMemory()
	j, err := Load(kv, timeutil.Fixed(now), counter())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := entry.Details{Name: "Zoloft", Dosage: "25mg", Icon: glyph.Pill, Color: glyph.Blue}
	early := time.Date(2025, time.March, 4, 9, 0, 0, 0, loc)
	late := time.Date(2025, time.March, 4, 14, 30, 0, 0, loc)
	if _, err := j.Add(d, late); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := j.Add(d, early); err != nil {
		t.Fatalf("add: %v", err)
	}

	today := j.Today()
	if len(today) != 2 || !today[0].Timestamp.Equal(late) {
		t.Fatalf("expected late entry first, got %+v", today)
	}
	if got := persisted(t, kv); len(got) != 2 {
		t.Fatalf("expected both entries persisted, got %d", len(got))
	}
	if today[0].ID == today[1].ID {
		t.Fatalf("ids must be unique")
	}
}

func TestAddSnapshotsDetails(t *testing.T) {
	j, _ := Load(store.NewMemory(), timeutil.Fixed(now), counter())
	d := entry.Details{Name: "Zoloft", Dosage: "25mg"}
	if _, err := j.Add(d, now); err != nil {
		t.Fatalf("add: %v", err)
	}
	d.Name = "Sertraline"
	if got := j.Today()[0].Name; got != "Zoloft" {
		t.Fatalf("log entry should keep the snapshot, got %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	j, _ := Load(kv, timeutil.Fixed(now), counter())
	for h := 8; h < 12; h++ {
		if _, err := j.Add(entry.Details{Name: "Vitamin"}, time.Date(2025, time.March, 4, h, 0, 0, 0, loc)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	want := j.Today()

	again, err := Load(kv, timeutil.Fixed(now), counter())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := again.Today()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	ids := map[string]bool{}
	for _, l := range want {
		ids[l.ID] = true
	}
	for _, l := range got {
		if !ids[l.ID] {
			t.Fatalf("unexpected entry %s after round trip", l.ID)
		}
	}
}

func TestDeleteKeepsYesterday(t *testing.T) {
	kv := store.NewMemory()
	yesterday := logAt("y", "Old", now.AddDate(0, 0, -1))
	seed(t, kv, yesterday, logAt("t", "New", now.Add(-time.Hour)))

	j, err := Load(kv, timeutil.Fixed(now), counter())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if today := j.Today(); len(today) != 1 || today[0].ID != "t" {
		t.Fatalf("expected only today's entry, got %+v", today)
	}

	found, err := j.Delete("t")
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}

	again, _ := Load(kv, timeutil.Fixed(now), counter())
	if len(again.Today()) != 0 {
		t.Fatalf("expected empty today after delete")
	}
	stored := persisted(t, kv)
	if len(stored) != 1 || stored[0].ID != "y" || !stored[0].Timestamp.Equal(yesterday.Timestamp.Time) || stored[0].Name != "Old" {
		t.Fatalf("yesterday's entry should be untouched, got %+v", stored)
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	kv := store.NewMemory()
	seed(t, kv, logAt("t", "New", now))
	j, _ := Load(kv, timeutil.Fixed(now), counter())
	found, err := j.Delete("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || len(j.Today()) != 1 {
		t.Fatalf("expected no change")
	}
}

func TestSaveReadsHistoryFresh(t *testing.T) {
	kv := store.NewMemory()
	j, _ := Load(kv, timeutil.Fixed(now), counter())

	// Another session writes an older entry after this one loaded.
	seed(t, kv, logAt("other", "Elsewhere", now.AddDate(0, 0, -2)))

	if _, err := j.Add(entry.Details{Name: "Here"}, now); err != nil {
		t.Fatalf("add: %v", err)
	}
	stored := persisted(t, kv)
	if len(stored) != 2 {
		t.Fatalf("expected merge to keep the other session's history, got %+v", stored)
	}
}

func TestSaveReplacesStoredToday(t *testing.T) {
	kv := store.NewMemory()
	j, _ := Load(kv, timeutil.Fixed(now), counter())

	// A same-day write from another session is overwritten: last writer wins.
	seed(t, kv, logAt("other", "Elsewhere", now.Add(-time.Minute)))

	if err := j.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored := persisted(t, kv); len(stored) != 0 {
		t.Fatalf("expected stored window replaced, got %+v", stored)
	}
}

func TestHistory(t *testing.T) {
	kv := store.NewMemory()
	seed(t, kv,
		logAt("old", "Old", now.AddDate(0, 0, -10)),
		logAt("y", "Yesterday", now.AddDate(0, 0, -1)),
		logAt("t", "Today", now),
	)
	j, _ := Load(kv, timeutil.Fixed(now), counter())
	got, err := j.History(timeutil.StartOfDay(now.AddDate(0, 0, -7)))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t" || got[1].ID != "y" {
		t.Fatalf("unexpected history %+v", got)
	}
}

func TestReloadAfterRollover(t *testing.T) {
	kv := store.NewMemory()
	clock := &movable{t: now}
	j, _ := Load(kv, clock, counter())
	if _, err := j.Add(entry.Details{Name: "Evening"}, now); err != nil {
		t.Fatalf("add: %v", err)
	}
	if j.Stale() {
		t.Fatalf("journal should be fresh")
	}

	clock.t = now.AddDate(0, 0, 1)
	if !j.Stale() {
		t.Fatalf("journal should be stale after midnight")
	}
	if err := j.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(j.Today()) != 0 {
		t.Fatalf("yesterday's entries should leave the window")
	}
	if stored := persisted(t, kv); len(stored) != 1 {
		t.Fatalf("history should keep yesterday's entry, got %+v", stored)
	}
}

func TestLoadMalformedIsFatal(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(Key, `[{"id":"x","timestamp":"not a time"}]`)
	if _, err := Load(kv, timeutil.Fixed(now), nil); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}
