// Package key provides CLI helpers to display the icon and color legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/medtrack/pkg/glyph"
	"tableflip.dev/medtrack/pkg/printers"
)

// Key prints the icons and palette a medication can use.
type Key struct {
	Out io.Writer
}

// Do renders the icon and color tables.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Icon"), bold.Sprint("Name"))
	for _, i := range glyph.Icons() {
		tbl.AddRow(i.String(), i.Glyph().Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Color"), bold.Sprint("Name"), bold.Sprint("Hex"))
	for _, c := range glyph.Colors() {
		tbl.AddRow(printers.Swatch(glyph.DefaultIcon, c), c.String(), c.Hex())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
