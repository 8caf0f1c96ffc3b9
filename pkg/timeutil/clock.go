package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutClock is the 24h time-of-day used by the quick-log time field.
	LayoutClock = "15:04"
	layoutDate  = "Monday, January 2"
	layoutTime  = "3:04 PM"
	layoutDay   = "Monday, January 2, 2006"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Useful in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// StartOfDay returns local midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// At places hour:minute on the calendar day of t, with seconds zeroed.
func At(t time.Time, hour, minute int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, t.Location())
}

// FormatClock renders the "HH:MM" value used by the time field.
func FormatClock(t time.Time) string {
	return t.Format(LayoutClock)
}

// ParseClock parses "HH:MM" (also "H:MM") into hour and minute.
func ParseClock(v string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", v)
	}
	if len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid minute in %q", v)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", v)
	}
	return hour, minute, nil
}

// FormatDate is the heading shown above today's log, e.g. "Tuesday, March 4".
func FormatDate(t time.Time) string {
	return t.Local().Format(layoutDate)
}

// FormatDay includes the year, used for history headings.
func FormatDay(t time.Time) string {
	return t.Local().Format(layoutDay)
}

// FormatTime is the display time of a log entry, e.g. "2:30 PM".
func FormatTime(t time.Time) string {
	return t.Local().Format(layoutTime)
}
