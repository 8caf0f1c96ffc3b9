// Package catalog holds the user's ordered list of medications.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/store"
)

// Key is where the catalog lives in the store.
const Key = "med_tracker_medications"

// ErrLoad marks a persisted catalog that could not be parsed.
var ErrLoad = errors.New("catalog: load")

// Catalog is the in-memory medication list. Every mutation rewrites the full
// list to the store.
type Catalog struct {
	kv    store.Persistence
	newID func() string
	meds  []*entry.Medication
}

// Load reads the catalog from kv. newID defaults to entry.NewID.
func Load(kv store.Persistence, newID func() string) (*Catalog, error) {
	if newID == nil {
		newID = entry.NewID
	}
	c := &Catalog{kv: kv, newID: newID}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory list with what is persisted.
func (c *Catalog) Reload() error {
	raw, ok, err := c.kv.Get(Key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	meds := make([]*entry.Medication, 0)
	if ok {
		if err := json.Unmarshal([]byte(raw), &meds); err != nil {
			return fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}
	c.meds = compact(meds)
	return nil
}

// List returns the medications in insertion order.
func (c *Catalog) List() []entry.Medication {
	out := make([]entry.Medication, 0, len(c.meds))
	for _, m := range c.meds {
		out = append(out, *m)
	}
	return out
}

func (c *Catalog) Get(id string) (entry.Medication, bool) {
	if i := c.index(id); i >= 0 {
		return *c.meds[i], true
	}
	return entry.Medication{}, false
}

// Find resolves ref as an id first, then as a case-insensitive name.
func (c *Catalog) Find(ref string) (entry.Medication, bool) {
	if m, ok := c.Get(ref); ok {
		return m, true
	}
	ref = strings.TrimSpace(ref)
	for _, m := range c.meds {
		if strings.EqualFold(m.Name, ref) {
			return *m, true
		}
	}
	return entry.Medication{}, false
}

// Add appends a new medication. A blank name is a no-op (ok=false).
func (c *Catalog) Add(d entry.Details) (entry.Medication, bool, error) {
	d = d.Normalize()
	if d.Name == "" {
		return entry.Medication{}, false, nil
	}
	m := &entry.Medication{ID: c.newID(), Details: d}
	c.meds = append(c.meds, m)
	if err := c.save(); err != nil {
		return entry.Medication{}, false, err
	}
	return *m, true, nil
}

// Edit replaces the fields of the medication id in place. A blank name or an
// unknown id is a no-op (ok=false).
func (c *Catalog) Edit(id string, d entry.Details) (entry.Medication, bool, error) {
	d = d.Normalize()
	if d.Name == "" {
		return entry.Medication{}, false, nil
	}
	i := c.index(id)
	if i < 0 {
		return entry.Medication{}, false, nil
	}
	c.meds[i].Details = d
	if err := c.save(); err != nil {
		return entry.Medication{}, false, err
	}
	return *c.meds[i], true, nil
}

// Delete removes the medication id. Logs already taken from it are kept.
// The list is persisted even when id is unknown.
func (c *Catalog) Delete(id string) (bool, error) {
	found := false
	kept := c.meds[:0]
	for _, m := range c.meds {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	c.meds = kept
	return found, c.save()
}

func (c *Catalog) index(id string) int {
	for i, m := range c.meds {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) save() error {
	list := c.meds
	if list == nil {
		list = []*entry.Medication{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}
	return c.kv.Set(Key, string(data))
}

func compact(meds []*entry.Medication) []*entry.Medication {
	out := meds[:0]
	for _, m := range meds {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
