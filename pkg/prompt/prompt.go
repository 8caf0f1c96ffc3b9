// Package prompt asks the user for input on the terminal.
package prompt

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/timeutil"
)

// Confirm asks a yes/no question, defaulting to no.
func Confirm(label string, in io.Reader, out io.Writer) (bool, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | red }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Templates: templates,
		Stdin:     io.NopCloser(in),
		Stdout:    NopCloser(out),
	}

	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	yes, _ := ParseBool(result)
	return yes, nil
}

// SelectMedication lets the user pick one medication from meds.
func SelectMedication(meds []entry.Medication, in io.Reader, out io.Writer) (entry.Medication, error) {
	if len(meds) == 0 {
		return entry.Medication{}, errors.New("no medications to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Dosage | cyan }}",
		Inactive: "   {{ .Name }} {{ .Dosage | faint }}",
		Selected: "{{ .Name | bold }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(meds[index].Name), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	p := promptui.Select{
		HideHelp:  true,
		Label:     "Medication",
		Items:     meds,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(in),
		Stdout:    NopCloser(out),
	}

	i, _, err := p.Run()
	if err != nil {
		return entry.Medication{}, err
	}
	return meds[i], nil
}

// Time asks for an HH:MM time of day, prefilled with def.
func Time(def string, in io.Reader, out io.Writer) (string, error) {
	p := promptui.Prompt{
		Label:     "Time taken",
		Default:   def,
		AllowEdit: true,
		Validate: func(input string) error {
			_, _, err := timeutil.ParseClock(input)
			return err
		},
		Stdin:  io.NopCloser(in),
		Stdout: NopCloser(out),
	}
	return p.Run()
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
