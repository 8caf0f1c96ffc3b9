package glyph

import "strings"

// Glyph describes how an icon renders in the terminal.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

// Icon is the closed set of medication shapes.
type Icon string

const (
	Pill   Icon = "pill"
	Tablet Icon = "tablet"

	DefaultIcon = Pill
)

var icons = []Glyph{
	{Key: string(Pill), Symbol: "⬬", Meaning: "pill"},
	{Key: string(Tablet), Symbol: "◐", Meaning: "tablet"},
}

// Icons lists every known icon in display order.
func Icons() []Icon {
	out := make([]Icon, 0, len(icons))
	for _, g := range icons {
		out = append(out, Icon(g.Key))
	}
	return out
}

// ParseIcon maps a tag onto a known icon, falling back to DefaultIcon.
func ParseIcon(s string) Icon {
	return Icon(strings.ToLower(strings.TrimSpace(s))).OrDefault()
}

func (i Icon) Valid() bool {
	for _, g := range icons {
		if g.Key == string(i) {
			return true
		}
	}
	return false
}

// OrDefault returns i when it is known, DefaultIcon otherwise.
func (i Icon) OrDefault() Icon {
	if i.Valid() {
		return i
	}
	return DefaultIcon
}

func (i Icon) Glyph() Glyph {
	want := string(i.OrDefault())
	for _, g := range icons {
		if g.Key == want {
			return g
		}
	}
	return icons[0]
}

func (i Icon) String() string {
	return i.Glyph().String()
}

// Next cycles through the icon set, used by pickers.
func (i Icon) Next(step int) Icon {
	all := Icons()
	return all[cycle(indexOf(all, i.OrDefault()), step, len(all))]
}

func indexOf[T comparable](list []T, v T) int {
	for idx, item := range list {
		if item == v {
			return idx
		}
	}
	return 0
}

func cycle(idx, step, n int) int {
	return ((idx+step)%n + n) % n
}
