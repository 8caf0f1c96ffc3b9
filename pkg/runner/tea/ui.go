package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/medtrack/pkg/app"
	"tableflip.dev/medtrack/pkg/runner/tea/internal/theme"
	"tableflip.dev/medtrack/pkg/store"
)

// focus picks which home pane the cursor keys drive.
type focus int

const (
	focusBar focus = iota
	focusLogs
)

// field is the active row of the medication form.
type field int

const (
	fieldName field = iota
	fieldDosage
	fieldIcon
	fieldColor
	fieldCount
)

// rolloverInterval is how often the UI checks whether the day changed.
const rolloverInterval = time.Minute

// Model contains UI state. Domain state lives in the app; the model only
// keeps cursors, text inputs and the status line.
type Model struct {
	app *app.App
	kv  store.Persistence
	ctx context.Context

	focus  focus
	barIdx int
	logIdx int
	medIdx int

	field  field
	name   textinput.Model
	dosage textinput.Model
	clock  textinput.Model

	commanding bool
	command    textinput.Model

	status string
	failed bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	termWidth  int
	termHeight int

	theme theme.Theme
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// New creates a new UI model over a. kv may be nil to disable watching.
func New(a *app.App, kv store.Persistence) Model {
	return Model{
		app:     a,
		kv:      kv,
		ctx:     context.Background(),
		focus:   focusBar,
		name:    newInput("Medication name", 64),
		dosage:  newInput("e.g. 25mg", 32),
		clock:   newInput("HH:MM", 5),
		command: newInput("command", 32),
		status:  "←/→ pick a medication, enter to log, ? for help",
		theme:   theme.Default(),
	}
}

// Init starts the store watch and the day rollover check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(startWatchCmd(m.ctx, m.kv), tickRollover())
}

// messages
type errMsg struct{ err error }
type rolloverMsg time.Time

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func tickRollover() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return rolloverMsg(t)
	})
}

func startWatchCmd(parent context.Context, kv store.Persistence) tea.Cmd {
	if kv == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := kv.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case errMsg:
		m.setError(msg.err)
	case watchStartedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("watch: %w", msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.reload()
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case rolloverMsg:
		if m.app != nil && m.app.Journal.Stale() {
			m.reload()
			m.setStatus("A new day has started")
		}
		cmds = append(cmds, tickRollover())
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.stopWatch()
			return m, tea.Quit
		}
		if m.app == nil {
			break
		}
		m.handleKeyPress(msg, &cmds)
	}

	m.clamp()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if m.commanding {
		m.handleCommandKey(msg, cmds)
		return
	}
	s := m.app.State()
	switch {
	case s.Pending != nil:
		m.handleTimeKey(msg, cmds)
	case s.DeleteLog != nil || s.DeleteMed != nil:
		m.handleConfirmKey(msg)
	case s.View == app.ViewMeds:
		m.handleMedsKey(msg, cmds)
	case s.View == app.ViewAddMed || s.View == app.ViewEditMed:
		m.handleFormKey(msg, cmds)
	default:
		m.handleHomeKey(msg, cmds)
	}
}

func (m *Model) handleHomeKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	s := m.app.State()
	switch msg.String() {
	case ":":
		m.enterCommandMode(cmds)
	case "tab":
		if m.focus == focusBar {
			m.focus = focusLogs
		} else {
			m.focus = focusBar
		}
	case "left", "h":
		m.focus = focusBar
		m.barIdx--
	case "right", "l":
		m.focus = focusBar
		m.barIdx++
	case "up", "k":
		m.focus = focusLogs
		m.logIdx--
	case "down", "j":
		m.focus = focusLogs
		m.logIdx++
	case "enter", "space", " ":
		if m.focus == focusBar && m.barIdx < len(s.Medications) {
			m.stageLog(s.Medications[m.barIdx].ID, cmds)
		}
	case "d", "x", "delete", "backspace":
		if m.focus == focusLogs && m.logIdx < len(s.Logs) {
			m.dispatch(app.RequestDeleteLog{ID: s.Logs[m.logIdx].ID})
		}
	case "m":
		m.dispatch(app.Navigate{To: app.ViewMeds})
	case "a":
		m.openForm(app.OpenAddMed{}, cmds)
	case "r":
		m.reload()
		m.setStatus("Reloaded")
	case "?":
		m.setStatus(helpFor(app.ViewHome))
	case "q":
		m.stopWatch()
		*cmds = append(*cmds, tea.Quit)
	}
}

func (m *Model) handleMedsKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	meds := m.app.State().Medications
	selected := ""
	if m.medIdx < len(meds) {
		selected = meds[m.medIdx].ID
	}
	switch msg.String() {
	case ":":
		m.enterCommandMode(cmds)
	case "up", "k":
		m.medIdx--
	case "down", "j":
		m.medIdx++
	case "a", "o":
		m.openForm(app.OpenAddMed{}, cmds)
	case "e", "i", "enter":
		if selected != "" {
			m.openForm(app.OpenEditMed{ID: selected}, cmds)
		}
	case "d", "x", "delete", "backspace":
		if selected != "" {
			m.dispatch(app.RequestDeleteMed{ID: selected})
		}
	case "t", "space", " ":
		if selected != "" {
			m.stageLog(selected, cmds)
		}
	case "?":
		m.setStatus(helpFor(app.ViewMeds))
	case "esc", "q", "left", "h":
		m.dispatch(app.Navigate{To: app.ViewHome})
	}
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	form := m.app.State().Form
	switch msg.String() {
	case "esc":
		m.dispatch(app.Navigate{To: app.ViewMeds})
		m.setStatus("Cancelled")
		return
	case "enter":
		editing := form.EditingID != ""
		if !m.dispatch(app.SubmitMed{}) {
			return
		}
		if v := m.app.State().View; v == app.ViewAddMed || v == app.ViewEditMed {
			m.setError(errors.New("a name is required"))
			return
		}
		if editing {
			m.setStatus("Updated " + strings.TrimSpace(form.Name))
		} else {
			m.setStatus("Added " + strings.TrimSpace(form.Name))
			m.medIdx = len(m.app.State().Medications) - 1
		}
		return
	case "tab", "down":
		m.focusField((m.field+1)%fieldCount, cmds)
		return
	case "shift+tab", "up":
		m.focusField((m.field+fieldCount-1)%fieldCount, cmds)
		return
	}

	switch m.field {
	case fieldIcon:
		if step := cycleStep(msg.String()); step != 0 {
			m.dispatch(app.SetIcon{Value: form.Icon.Next(step)})
		}
	case fieldColor:
		if step := cycleStep(msg.String()); step != 0 {
			m.dispatch(app.SetColor{Value: form.Color.Next(step)})
		}
	case fieldName:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		*cmds = append(*cmds, cmd)
		m.dispatch(app.SetName{Value: m.name.Value()})
	case fieldDosage:
		var cmd tea.Cmd
		m.dosage, cmd = m.dosage.Update(msg)
		*cmds = append(*cmds, cmd)
		m.dispatch(app.SetDosage{Value: m.dosage.Value()})
	}
}

func cycleStep(key string) int {
	switch key {
	case "left", "h":
		return -1
	case "right", "l", "space", " ":
		return 1
	}
	return 0
}

func (m *Model) handleTimeKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatch(app.CancelLog{})
		m.clock.Blur()
		m.setStatus("Cancelled")
	case "enter":
		pending := m.app.State().Pending
		if !m.dispatch(app.SetLogTime{Value: strings.TrimSpace(m.clock.Value())}) {
			return
		}
		if err := m.app.Dispatch(app.ConfirmLog{}); err != nil {
			if errors.Is(err, app.ErrInvalidTime) {
				m.setError(errors.New("enter the time as HH:MM"))
			} else {
				m.setError(err)
			}
			return
		}
		m.clock.Blur()
		m.logIdx = 0
		m.setStatus(fmt.Sprintf("Logged %s at %s", pending.Medication.Label(), strings.TrimSpace(m.clock.Value())))
	default:
		var cmd tea.Cmd
		m.clock, cmd = m.clock.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	s := m.app.State()
	switch msg.String() {
	case "y", "enter":
		if s.DeleteLog != nil {
			if m.dispatch(app.ConfirmDeleteLog{}) {
				m.setStatus("Removed " + s.DeleteLog.Label())
			}
		} else if m.dispatch(app.ConfirmDeleteMed{}) {
			m.setStatus("Deleted " + s.DeleteMed.Label())
		}
	case "n", "esc", "q":
		if s.DeleteLog != nil {
			m.dispatch(app.CancelDeleteLog{})
		} else {
			m.dispatch(app.CancelDeleteMed{})
		}
		m.setStatus("Cancelled")
	}
}

func (m *Model) handleCommandKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.command.Value())
		m.exitCommandMode()
		switch input {
		case "q", "quit", "exit":
			m.stopWatch()
			*cmds = append(*cmds, tea.Quit)
		case "meds", "medications":
			m.dispatch(app.Navigate{To: app.ViewMeds})
		case "home", "today":
			m.dispatch(app.Navigate{To: app.ViewHome})
		case "add", "new":
			m.openForm(app.OpenAddMed{}, cmds)
		case "reload":
			m.reload()
			m.setStatus("Reloaded")
		case "":
			// nothing
		default:
			m.setStatus(fmt.Sprintf("Unknown command: %s", input))
		}
	case "esc":
		m.exitCommandMode()
		m.setStatus("Command cancelled")
	default:
		var cmd tea.Cmd
		m.command, cmd = m.command.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) enterCommandMode(cmds *[]tea.Cmd) {
	m.commanding = true
	m.command.Reset()
	if cmd := m.command.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	m.setStatus("COMMAND: meds, home, add, reload, q")
}

func (m *Model) exitCommandMode() {
	m.commanding = false
	m.command.Reset()
	m.command.Blur()
}

// stageLog opens the time dialog prefilled with the staged time.
func (m *Model) stageLog(id string, cmds *[]tea.Cmd) {
	if !m.dispatch(app.StageLog{MedicationID: id}) {
		return
	}
	p := m.app.State().Pending
	if p == nil {
		return
	}
	m.clock.SetValue(p.Time)
	m.clock.CursorEnd()
	if cmd := m.clock.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

// openForm applies open and mirrors the form into the text inputs.
func (m *Model) openForm(open app.Action, cmds *[]tea.Cmd) {
	if !m.dispatch(open) {
		return
	}
	form := m.app.State().Form
	m.name.SetValue(form.Name)
	m.name.CursorEnd()
	m.dosage.SetValue(form.Dosage)
	m.dosage.CursorEnd()
	m.focusField(fieldName, cmds)
}

func (m *Model) focusField(f field, cmds *[]tea.Cmd) {
	m.field = f
	m.name.Blur()
	m.dosage.Blur()
	var cmd tea.Cmd
	switch f {
	case fieldName:
		cmd = m.name.Focus()
	case fieldDosage:
		cmd = m.dosage.Focus()
	default:
		return
	}
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

// dispatch applies act, reporting failures on the status line.
func (m *Model) dispatch(act app.Action) bool {
	if err := m.app.Dispatch(act); err != nil {
		m.setError(err)
		return false
	}
	return true
}

func (m *Model) reload() {
	if m.app == nil {
		return
	}
	if err := m.app.Reload(); err != nil {
		m.setError(err)
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = "ERR: " + err.Error()
	m.failed = true
}

// clamp keeps the cursors inside the current lists.
func (m *Model) clamp() {
	if m.app == nil {
		return
	}
	s := m.app.State()
	m.barIdx = clampIndex(m.barIdx, len(s.Medications))
	m.logIdx = clampIndex(m.logIdx, len(s.Logs))
	m.medIdx = clampIndex(m.medIdx, len(s.Medications))
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
