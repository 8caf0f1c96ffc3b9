package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/entry"
	"tableflip.dev/medtrack/pkg/runner/tea/internal/theme"
	"tableflip.dev/medtrack/pkg/timeutil"
)

func helpFor(v app.View) string {
	switch v {
	case app.ViewMeds:
		return "j/k move, a add, e edit, d delete, t log, esc back, : commands"
	case app.ViewAddMed, app.ViewEditMed:
		return "tab next field, ←/→ change icon or color, enter save, esc cancel"
	default:
		return "←/→ pick, enter log, tab/j/k today, d remove, m medications, a add, q quit"
	}
}

// View renders the current screen with any open dialog below it.
func (m Model) View() string {
	if m.app == nil {
		return "no data"
	}
	s := m.app.State()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Medication Tracker"))
	b.WriteString("  ")
	b.WriteString(m.theme.Date.Render(timeutil.FormatDate(m.app.Clock.Now())))
	b.WriteString("\n\n")

	switch s.View {
	case app.ViewMeds:
		b.WriteString(m.viewMeds(s))
	case app.ViewAddMed, app.ViewEditMed:
		b.WriteString(m.viewForm(s))
	default:
		b.WriteString(m.viewHome(s))
	}

	if dialog := m.viewDialog(s); dialog != "" {
		b.WriteString("\n\n")
		b.WriteString(dialog)
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewFooter(s))
	return b.String()
}

func (m Model) viewHome(s app.State) string {
	lines := []string{
		m.theme.Section.Render("Today") + m.theme.Faint.Render(fmt.Sprintf("  %d %s", len(s.Logs), plural(len(s.Logs), "dose", "doses"))),
	}
	if len(s.Logs) == 0 {
		lines = append(lines, m.theme.Faint.Render("  No medications logged today"))
	}
	for i, l := range s.Logs {
		line := m.logLine(l)
		if m.focus == focusLogs && i == m.logIdx {
			line = "› " + m.theme.Selected.Render(line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", m.theme.Section.Render("Take"))
	if len(s.Medications) == 0 {
		lines = append(lines, m.theme.Faint.Render("  No medications yet. Press a to add one."))
		return strings.Join(lines, "\n")
	}
	chips := make([]string, 0, len(s.Medications))
	for i, med := range s.Medications {
		chip := fmt.Sprintf(" %s %s ", theme.Swatch(med.Icon, med.Color), med.Name)
		if m.focus == focusBar && i == m.barIdx {
			chip = m.theme.Selected.Render(chip)
		}
		chips = append(chips, chip)
	}
	lines = append(lines, "  "+strings.Join(chips, " "))
	return strings.Join(lines, "\n")
}

func (m Model) logLine(l entry.Log) string {
	line := fmt.Sprintf("%8s  %s %s", timeutil.FormatTime(l.Timestamp.Time), theme.Swatch(l.Icon, l.Color), l.Name)
	if l.Dosage != "" {
		line += m.theme.Faint.Render("  " + l.Dosage)
	}
	return line
}

func (m Model) viewMeds(s app.State) string {
	lines := []string{m.theme.Section.Render("Medications")}
	if len(s.Medications) == 0 {
		lines = append(lines, m.theme.Faint.Render("  No medications yet. Press a to add one."))
	}
	for i, med := range s.Medications {
		line := fmt.Sprintf("%s %s", theme.Swatch(med.Icon, med.Color), med.Name)
		if med.Dosage != "" {
			line += m.theme.Faint.Render("  " + med.Dosage)
		}
		if i == m.medIdx {
			line = "› " + m.theme.Selected.Render(line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewForm(s app.State) string {
	title := "Add medication"
	if s.View == app.ViewEditMed {
		title = "Edit medication"
	}
	row := func(f field, label, value string) string {
		marker := "  "
		if m.field == f {
			marker = "› "
		}
		return fmt.Sprintf("%s%-8s %s", marker, label, value)
	}
	icon := s.Form.Icon.OrDefault()
	color := s.Form.Color.OrDefault()
	lines := []string{
		m.theme.Section.Render(title),
		row(fieldName, "Name", m.name.View()),
		row(fieldDosage, "Dosage", m.dosage.View()),
		row(fieldIcon, "Icon", fmt.Sprintf("‹ %s %s ›", icon.String(), string(icon))),
		row(fieldColor, "Color", fmt.Sprintf("‹ %s %s ›", theme.Swatch(icon, color), color.String())),
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewDialog(s app.State) string {
	switch {
	case s.Pending != nil:
		body := strings.Join([]string{
			"Log " + theme.Swatch(s.Pending.Medication.Icon, s.Pending.Medication.Color) + " " + s.Pending.Medication.Label(),
			"",
			"Time  " + m.clock.View(),
			"",
			m.theme.Faint.Render("enter log · esc cancel"),
		}, "\n")
		return m.theme.Modal.Render(body)
	case s.DeleteLog != nil:
		body := strings.Join([]string{
			m.theme.Danger.Render("Remove this dose?"),
			fmt.Sprintf("%s at %s", s.DeleteLog.Label(), timeutil.FormatTime(s.DeleteLog.Timestamp.Time)),
			"",
			m.theme.Faint.Render("y remove · n keep"),
		}, "\n")
		return m.theme.Modal.Render(body)
	case s.DeleteMed != nil:
		body := strings.Join([]string{
			m.theme.Danger.Render("Delete this medication?"),
			s.DeleteMed.Label(),
			m.theme.Faint.Render("Past doses stay in the log."),
			"",
			m.theme.Faint.Render("y delete · n keep"),
		}, "\n")
		return m.theme.Modal.Render(body)
	}
	return ""
}

func (m Model) viewFooter(s app.State) string {
	if m.commanding {
		return ":" + m.command.View()
	}
	status := m.theme.Footer.Status.Render(m.status)
	if m.failed {
		status = m.theme.Footer.Error.Render(m.status)
	}
	help := m.theme.Footer.Help.Render(helpFor(s.View))
	width := m.termWidth
	if width <= 0 {
		return help + "\n" + status
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(help) + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(status)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
