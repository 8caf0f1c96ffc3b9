// Package journal keeps the intake log. Only today's entries are held in
// memory; older entries stay in the store and are merged back on every save.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/store"
	"tableflip.dev/medtrack/pkg/timeutil"
)

// Key is where the full log history lives in the store.
const Key = "med_tracker_logs"

// ErrLoad marks a persisted history that could not be parsed.
var ErrLoad = errors.New("journal: load")

type Journal struct {
	kv    store.Persistence
	clock timeutil.Clock
	newID func() string

	// dayStart is the boundary of the window held in logs.
	dayStart time.Time
	logs     []*entry.Log
}

// Load reads today's window of the history. clock defaults to the system
// clock and newID to entry.NewID.
func Load(kv store.Persistence, clock timeutil.Clock, newID func() string) (*Journal, error) {
	if clock == nil {
		clock = timeutil.System{}
	}
	if newID == nil {
		newID = entry.NewID
	}
	j := &Journal{kv: kv, clock: clock, newID: newID}
	if err := j.Reload(); err != nil {
		return nil, err
	}
	return j, nil
}

// Reload re-reads the window for the current day from the store.
func (j *Journal) Reload() error {
	dayStart := timeutil.StartOfDay(j.clock.Now())
	all, err := j.readAll()
	if err != nil {
		return err
	}
	_, today := Split(all, dayStart)
	SortRecent(today)
	j.dayStart = dayStart
	j.logs = today
	return nil
}

// Stale reports whether the clock has moved past the day that was loaded.
func (j *Journal) Stale() bool {
	return timeutil.StartOfDay(j.clock.Now()).After(j.dayStart)
}

// DayStart is the start of the window currently held.
func (j *Journal) DayStart() time.Time {
	return j.dayStart
}

// Today returns the window, most recent first.
func (j *Journal) Today() []entry.Log {
	out := make([]entry.Log, 0, len(j.logs))
	for _, l := range j.logs {
		out = append(out, *l)
	}
	return out
}

func (j *Journal) Get(id string) (entry.Log, bool) {
	for _, l := range j.logs {
		if l.ID == id {
			return *l, true
		}
	}
	return entry.Log{}, false
}

// Add records an intake of d at the given time and saves.
func (j *Journal) Add(d entry.Details, at time.Time) (entry.Log, error) {
	l := entry.NewLog(j.newID(), d, entry.At(at))
	j.logs = append([]*entry.Log{l}, j.logs...)
	SortRecent(j.logs)
	if err := j.Save(); err != nil {
		return entry.Log{}, err
	}
	return *l, nil
}

// Delete removes the entry id from today and saves. Unknown ids are a no-op
// but still save.
func (j *Journal) Delete(id string) (bool, error) {
	found := false
	kept := make([]*entry.Log, 0, len(j.logs))
	for _, l := range j.logs {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	j.logs = kept
	return found, j.Save()
}

// Save merges the in-memory window into the persisted history. The history
// is re-read on every call: entries before the window are kept as stored and
// the stored window is replaced by the in-memory one. Last writer wins.
func (j *Journal) Save() error {
	all, err := j.readAll()
	if err != nil {
		return err
	}
	before, _ := Split(all, j.dayStart)
	merged := make([]*entry.Log, 0, len(before)+len(j.logs))
	merged = append(merged, before...)
	merged = append(merged, j.logs...)

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("journal: encode: %w", err)
	}
	return j.kv.Set(Key, string(data))
}

// History returns every persisted entry at or after since, most recent
// first. It does not touch the in-memory window.
func (j *Journal) History(since time.Time) ([]entry.Log, error) {
	all, err := j.readAll()
	if err != nil {
		return nil, err
	}
	_, recent := Split(all, since)
	SortRecent(recent)
	out := make([]entry.Log, 0, len(recent))
	for _, l := range recent {
		out = append(out, *l)
	}
	return out, nil
}

func (j *Journal) readAll() ([]*entry.Log, error) {
	raw, ok, err := j.kv.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if !ok {
		return []*entry.Log{}, nil
	}
	var all []*entry.Log
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return all, nil
}

// Split partitions logs around boundary: before holds timestamps strictly
// earlier, rest holds the ones at or after it. Input order is preserved.
func Split(logs []*entry.Log, boundary time.Time) (before, rest []*entry.Log) {
	before = make([]*entry.Log, 0)
	rest = make([]*entry.Log, 0)
	for _, l := range logs {
		if l == nil {
			continue
		}
		if l.Timestamp.Before(boundary) {
			before = append(before, l)
		} else {
			rest = append(rest, l)
		}
	}
	return before, rest
}

// SortRecent orders logs by timestamp, most recent first. Ties keep their
// relative order.
func SortRecent(logs []*entry.Log) {
	sort.SliceStable(logs, func(i, k int) bool {
		return logs[i].Timestamp.After(logs[k].Timestamp.Time)
	})
}
