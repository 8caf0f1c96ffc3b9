package glyph

import "strings"

// Color is the closed palette a medication can be tagged with.
type Color string

const (
	Red    Color = "red"
	Orange Color = "orange"
	Amber  Color = "amber"
	Yellow Color = "yellow"
	Lime   Color = "lime"
	Green  Color = "green"
	Teal   Color = "teal"
	Cyan   Color = "cyan"
	Blue   Color = "blue"
	Indigo Color = "indigo"
	Violet Color = "violet"
	Purple Color = "purple"
	Pink   Color = "pink"
	Rose   Color = "rose"

	DefaultColor = Blue
)

type swatch struct {
	name Color
	hex  string
}

var palette = []swatch{
	{Red, "#ef4444"},
	{Orange, "#f97316"},
	{Amber, "#f59e0b"},
	{Yellow, "#eab308"},
	{Lime, "#84cc16"},
	{Green, "#22c55e"},
	{Teal, "#14b8a6"},
	{Cyan, "#06b6d4"},
	{Blue, "#3b82f6"},
	{Indigo, "#6366f1"},
	{Violet, "#8b5cf6"},
	{Purple, "#a855f7"},
	{Pink, "#ec4899"},
	{Rose, "#f43f5e"},
}

// Colors lists the palette in display order.
func Colors() []Color {
	out := make([]Color, 0, len(palette))
	for _, s := range palette {
		out = append(out, s.name)
	}
	return out
}

// ParseColor maps a tag onto the palette, falling back to DefaultColor.
func ParseColor(s string) Color {
	return Color(strings.ToLower(strings.TrimSpace(s))).OrDefault()
}

func (c Color) Valid() bool {
	for _, s := range palette {
		if s.name == c {
			return true
		}
	}
	return false
}

func (c Color) OrDefault() Color {
	if c.Valid() {
		return c
	}
	return DefaultColor
}

// Hex is the display value of the color, e.g. "#3b82f6".
func (c Color) Hex() string {
	want := c.OrDefault()
	for _, s := range palette {
		if s.name == want {
			return s.hex
		}
	}
	return palette[8].hex
}

func (c Color) String() string {
	return string(c.OrDefault())
}

func (c Color) Next(step int) Color {
	all := Colors()
	return all[cycle(indexOf(all, c.OrDefault()), step, len(all))]
}
