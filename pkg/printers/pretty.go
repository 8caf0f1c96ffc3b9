package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const idWidth = len("xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx  ")

var spacing = strings.Repeat(" ", idWidth)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " dose")
	default:
		_, _ = c.Fprintln(pp.out(), " doses")
	}
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	pad := idWidth - len(id)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.out(), id+strings.Repeat(" ", pad))
}

// Swatch renders the icon in its palette color.
func Swatch(icon glyph.Icon, c glyph.Color) string {
	if color.NoColor {
		return icon.String()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(icon.String())
}

// Today prints the day heading and its logs, most recent first.
func (pp *PrettyPrint) Today(day time.Time, logs []entry.Log) {
	pp.TitleWithCount(timeutil.FormatDate(day), len(logs))
	pp.Logs(logs)
}

func (pp *PrettyPrint) Logs(logs []entry.Log) {
	if len(logs) == 0 {
		pp.none("no medications logged")
		return
	}
	faint := color.New(color.Faint)
	for _, l := range logs {
		pp.id(l.ID)
		_, _ = faint.Fprintf(pp.out(), "%8s ", timeutil.FormatTime(l.Timestamp.Time))
		_, _ = fmt.Fprintf(pp.out(), "%s %s", Swatch(l.Icon, l.Color), l.Name)
		if l.Dosage != "" {
			_, _ = faint.Fprintf(pp.out(), "  %s", l.Dosage)
		}
		_, _ = fmt.Fprintln(pp.out(), "")
	}
	pp.NewLine()
}

// Medications prints the catalog as a table in catalog order.
func (pp *PrettyPrint) Medications(meds []entry.Medication) {
	pp.Title("Medications")
	if len(meds) == 0 {
		pp.none("no medications yet")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, m := range meds {
		row := []interface{}{Swatch(m.Icon, m.Color), bold.Sprint(m.Name), m.Dosage, faint.Sprint(m.Color.String())}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(m.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// History prints logs grouped under one heading per local day. logs must be
// sorted most recent first.
func (pp *PrettyPrint) History(logs []entry.Log) {
	if len(logs) == 0 {
		pp.Title("History")
		pp.none("nothing logged")
		return
	}
	start := 0
	for i := 1; i <= len(logs); i++ {
		if i < len(logs) && logs[i].Timestamp.SameDay(logs[start].Timestamp.Time) {
			continue
		}
		pp.TitleWithCount(timeutil.FormatDay(logs[start].Timestamp.Time), i-start)
		pp.Logs(logs[start:i])
		start = i
	}
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
