package entry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/medtrack/pkg/glyph"
)

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// Details are the user-facing fields shared by medications and the log
// entries snapshotted from them.
type Details struct {
	Name   string      `json:"name"`
	Dosage string      `json:"dosage"`
	Icon   glyph.Icon  `json:"icon"`
	Color  glyph.Color `json:"color"`
}

// Normalize trims the text fields and maps unknown tags to the defaults.
func (d Details) Normalize() Details {
	return Details{
		Name:   strings.TrimSpace(d.Name),
		Dosage: strings.TrimSpace(d.Dosage),
		Icon:   d.Icon.OrDefault(),
		Color:  d.Color.OrDefault(),
	}
}

// Label is "Name (Dosage)", or just the name when there is no dosage.
func (d Details) Label() string {
	if d.Dosage == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Dosage)
}

// Medication is a catalog entry.
type Medication struct {
	ID string `json:"id"`
	Details
}

// Log is a single intake record. Its details are a copy taken when it was
// logged, not a reference to the medication.
type Log struct {
	ID string `json:"id"`
	Details
	Timestamp Timestamp `json:"timestamp"`
}

// NewLog snapshots d into a log entry at the given time.
func NewLog(id string, d Details, at Timestamp) *Log {
	return &Log{
		ID:        id,
		Details:   d,
		Timestamp: at,
	}
}

func (l *Log) String() string {
	return fmt.Sprintf("%s %s  %s", l.Timestamp.Clock(), l.Icon.String(), l.Label())
}
