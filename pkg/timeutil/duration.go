package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is how far back history looks when no window is given.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// windowUnits is ordered largest first; the first alias is the canonical label.
var windowUnits = []struct {
	size    time.Duration
	aliases []string
}{
	{week, []string{"w", "wk", "wks", "week", "weeks"}},
	{day, []string{"d", "day", "days"}},
	{time.Hour, []string{"h", "hr", "hrs", "hour", "hours"}},
}

var segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)\s*`)

func unitSize(name string) (time.Duration, bool) {
	for _, u := range windowUnits {
		for _, a := range u.aliases {
			if a == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// ParseWindow reads a history window such as "1w", "3 days" or "1w2d" and
// returns it with its canonical label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid window %q", strings.TrimSpace(input))
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window count %q: %w", m[1], err)
		}
		size, ok := unitSize(m[2])
		if !ok {
			return 0, "", fmt.Errorf("unknown window unit %q, use w, d or h", m[2])
		}
		total += time.Duration(n) * size
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window must be longer than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow is the canonical label of d, e.g. "1w2d". Anything under an
// hour is dropped.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range windowUnits {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.aliases[0])
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

// WindowStart is the midnight that begins a history window ending at now.
// A window shorter than a day still covers today.
func WindowStart(now time.Time, window time.Duration) time.Time {
	return StartOfDay(now.Add(-window))
}
