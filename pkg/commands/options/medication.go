package options

import (
	"fmt"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/medtrack/pkg/glyph"
)

// MedicationOptions
type MedicationOptions struct {
	Name   string
	Dosage string
	Icon   string
	Color  string
}

func AddMedicationArgs(cmd *cobra.Command, o *MedicationOptions, rename bool) {
	if rename {
		cmd.Flags().StringVar(&o.Name, "name", "",
			"New name of the medication.")
	}
	cmd.Flags().StringVarP(&o.Dosage, "dosage", "d", "",
		`Free-form dosage, example: --dosage="25mg".`)
	cmd.Flags().StringVar(&o.Icon, "icon", string(glyph.DefaultIcon),
		base.Wrap80(fmt.Sprintf("Icon shown next to the medication. One of %s.", strings.Join(iconNames(), ", "))))
	cmd.Flags().StringVar(&o.Color, "color", string(glyph.DefaultColor),
		base.Wrap80(fmt.Sprintf("Color of the icon. One of %s.", strings.Join(colorNames(), ", "))))
}

// Validate rejects icon and color names outside the palette.
func (o *MedicationOptions) Validate() error {
	if !glyph.Icon(strings.ToLower(o.Icon)).Valid() {
		return fmt.Errorf("unknown icon %q", o.Icon)
	}
	if !glyph.Color(strings.ToLower(o.Color)).Valid() {
		return fmt.Errorf("unknown color %q", o.Color)
	}
	return nil
}

// Changed returns a pointer to the value of each flag set on cmd, nil for
// flags left at their default.
func (o *MedicationOptions) Changed(cmd *cobra.Command) (name, dosage, icon, color *string) {
	pick := func(flag string, v *string) *string {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			return v
		}
		return nil
	}
	return pick("name", &o.Name), pick("dosage", &o.Dosage), pick("icon", &o.Icon), pick("color", &o.Color)
}

func iconNames() []string {
	var out []string
	for _, i := range glyph.Icons() {
		out = append(out, string(i))
	}
	return out
}

func colorNames() []string {
	var out []string
	for _, c := range glyph.Colors() {
		out = append(out, string(c))
	}
	return out
}
