// Package tui is the interactive terminal front end of the operation controller.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arithma_tech/entity"
	"arithma_tech/internal/compression"
)

// Controller is the controller surface the TUI drives.
type Controller interface {
	compression.Ticker
	SwitchMode(m entity.InputMode) error
	SetText(text string) error
	SelectFile(path string) error
	ClearSelection() error
	Request(ctx context.Context, kind entity.OperationKind) (bool, error)
	Snapshot() compression.Snapshot
}

// History is the history store surface used by the history pane.
type History interface {
	ListAll(ctx context.Context) ([]entity.OperationRecord, error)
	DeleteByTimestamp(ctx context.Context, ts time.Time) (int64, error)
}

type view int

const (
	viewMain view = iota
	viewHistory
	viewGuide
)

type tickMsg struct{}

// Model -.
type Model struct {
	ctx     context.Context
	ctrl    Controller
	history History
	guide   string

	view     view
	input    textinput.Model
	progress progress.Model
	message  string
	width    int

	records []entity.OperationRecord
	cursor  int
}

// New builds the model in file mode, matching the controller's initial state.
func New(ctx context.Context, ctrl Controller, history History, guide string) *Model {
	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Width = 50
	ti.Focus()

	p := progress.New(progress.WithDefaultGradient())
	p.Width = 50

	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		history:  history,
		guide:    guide,
		input:    ti,
		progress: p,
	}
	m.syncPlaceholder()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl Controller, history History, guide string) error {
	p := tea.NewProgram(New(ctx, ctrl, history, guide), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 10
		if w < 10 {
			w = 10
		}
		m.progress.Width = w
		m.input.Width = w
		return m, nil

	case tickMsg:
		if !m.ctrl.Busy() {
			return m, nil
		}
		if _, done := m.ctrl.Tick(); done {
			m.message = m.ctrl.Snapshot().Status.Confirmation()
			return m, nil
		}
		return m, tickCmd(m.ctrl.TickInterval())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewHistory:
			return m.updateHistory(msg)
		case viewGuide:
			if s := msg.String(); s == "esc" || s == "enter" || s == "q" {
				m.view = viewMain
			}
			return m, nil
		default:
			return m.updateMain(msg)
		}
	}

	return m, nil
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab":
		next := entity.ModeText
		if m.ctrl.Snapshot().Mode == entity.ModeText {
			next = entity.ModeFile
		}
		if m.report(m.ctrl.SwitchMode(next)) {
			m.input.Reset()
			m.syncPlaceholder()
		}
		return m, nil
	case "enter":
		if m.ctrl.Snapshot().Mode == entity.ModeFile {
			m.report(m.ctrl.SelectFile(strings.TrimSpace(m.input.Value())))
		}
		return m, nil
	case "ctrl+x":
		if m.report(m.ctrl.ClearSelection()) {
			m.input.Reset()
		}
		return m, nil
	case "ctrl+e":
		return m, m.request(entity.Compress)
	case "ctrl+d":
		return m, m.request(entity.Decompress)
	case "ctrl+r":
		m.view = viewHistory
		m.cursor = 0
		m.reloadHistory()
		return m, nil
	case "ctrl+g":
		m.view = viewGuide
		return m, nil
	}

	if m.ctrl.Busy() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.ctrl.Snapshot().Mode == entity.ModeText {
		m.report(m.ctrl.SetText(m.input.Value()))
	}
	return m, cmd
}

func (m *Model) request(kind entity.OperationKind) tea.Cmd {
	accepted, err := m.ctrl.Request(m.ctx, kind)
	if !accepted {
		m.report(err)
		return nil
	}
	m.message = ""
	if err != nil {
		m.message = "History not saved: " + err.Error()
	}
	return tickCmd(m.ctrl.TickInterval())
}

// report shows err and returns true when there was none.
func (m *Model) report(err error) bool {
	if err == nil {
		m.message = ""
		return true
	}
	if ve := entity.AsValidationError(err); ve != nil {
		m.message = ve.Title() + ": " + ve.Hint()
		return false
	}
	if errors.Is(err, entity.ErrOperationInProgress) {
		m.message = "Please wait for the current operation to finish."
		return false
	}
	m.message = err.Error()
	return false
}

func (m *Model) syncPlaceholder() {
	if m.ctrl.Snapshot().Mode == entity.ModeText {
		m.input.Placeholder = "Type the text to compress"
	} else {
		m.input.Placeholder = "Image path, then Enter"
	}
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = viewMain
		m.message = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "r":
		m.reloadHistory()
	case "d", "delete":
		m.deleteSelected()
	}
	return m, nil
}

func (m *Model) reloadHistory() {
	records, err := m.history.ListAll(m.ctx)
	if err != nil {
		m.message = "Could not load history: " + err.Error()
		return
	}
	m.records = records
	if m.cursor >= len(m.records) {
		m.cursor = len(m.records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) deleteSelected() {
	if len(m.records) == 0 {
		m.message = "No Selection: Please select an entry to delete."
		return
	}
	rec := m.records[m.cursor]
	if _, err := m.history.DeleteByTimestamp(m.ctx, rec.Timestamp); err != nil {
		m.message = "Delete Failed: Could not delete the entry."
		return
	}
	m.message = ""
	m.reloadHistory()
}

func (m *Model) View() string {
	switch m.view {
	case viewHistory:
		return m.historyView()
	case viewGuide:
		return guideBoxStyle.Render(m.guide) + "\n" + helpTextStyle.Render("Esc: back")
	default:
		return m.mainView()
	}
}

func (m *Model) mainView() string {
	snap := m.ctrl.Snapshot()

	text := inactiveModeStyle.Render("( ) Text")
	file := activeModeStyle.Render("(•) File")
	if snap.Mode == entity.ModeText {
		text = activeModeStyle.Render("(•) Text")
		file = inactiveModeStyle.Render("( ) File")
	}

	lines := []string{
		titleStyle.Render("Arithma"),
		"",
		text + "  " + file,
		"",
		inputBoxStyle.Render(m.input.View()),
	}
	if snap.Mode == entity.ModeFile {
		lines = append(lines, "Selected: "+snap.FileLabel)
	}

	lines = append(lines,
		"",
		m.progress.ViewAs(float64(snap.Percent)/100),
		statusStyle.Render(snap.Status.String()),
	)
	if m.message != "" {
		lines = append(lines, "", messageStyle.Render(m.message))
	}
	lines = append(lines, "",
		helpTextStyle.Render("Tab: mode | Enter: select file | Ctrl+X: clear | Ctrl+E: compress | Ctrl+D: decompress"),
		helpTextStyle.Render("Ctrl+R: history | Ctrl+G: guide | Esc: quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) historyView() string {
	lines := []string{titleStyle.Render("History"), ""}

	if len(m.records) == 0 {
		lines = append(lines, helpTextStyle.Render("No operations logged yet."))
	}
	for i, rec := range m.records {
		row := fmt.Sprintf("%-20s %-11s %-5s %s",
			rec.Timestamp.Local().Format("2006-01-02 15:04:05"), rec.Operation, rec.DataType, rec.Name)
		if i == m.cursor {
			row = selectedRowStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}

	if m.message != "" {
		lines = append(lines, "", messageStyle.Render(m.message))
	}
	lines = append(lines, "", helpTextStyle.Render("↑/↓: select | D: delete | R: refresh | Esc: back"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
