package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/store"
)

// Run launches the Bubble Tea UI. kv is watched for writes from other
// sessions and may be nil.
func Run(a *app.App, kv store.Persistence) error {
	p := tea.NewProgram(New(a, kv), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
