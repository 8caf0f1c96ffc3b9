package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// LayoutISO matches the browser's Date.toISOString output.
const LayoutISO = "2006-01-02T15:04:05.000Z07:00"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

type Timestamp struct {
	time.Time
}

func At(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) SameDay(then time.Time) bool {
	ty, tm, td := t.Local().Date()
	y, m, d := then.Local().Date()
	return ty == y && tm == m && td == d
}

// Clock is the local wall-clock time, e.g. "2:30 PM".
func (t Timestamp) Clock() string {
	return t.Local().Format("3:04 PM")
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(LayoutISO)
}
