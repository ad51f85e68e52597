// Package tui is the interactive terminal surface for the task list.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jacksmith/todo/internal/control"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmClear
)

const helpText = "a add • space toggle • e edit • d delete • c clear completed • X clear all • q quit"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	highStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mediumStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Option configures a Model.
type Option func(*Model)

// WithDefaultPriority sets the priority preselected for new tasks.
func WithDefaultPriority(p model.Priority) Option {
	return func(m *Model) {
		if p.Valid() {
			m.addPriority = p
		}
	}
}

// WithConfirmClearAll controls whether X asks before clearing every task.
func WithConfirmClearAll(confirm bool) Option {
	return func(m *Model) { m.confirmClearAll = confirm }
}

// Model is the bubbletea model. Task state is read from the renderer's
// current frame; every change goes through the controller.
type Model struct {
	ctrl     *control.Controller
	renderer *view.Renderer

	mode            mode
	cursor          int
	input           textinput.Model
	addPriority     model.Priority
	editPriority    model.Priority
	confirmClearAll bool
	status          string
	statusErr       bool
}

// New returns a Model in list mode.
func New(ctrl *control.Controller, renderer *view.Renderer, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 512
	ti.Width = 50

	m := Model{
		ctrl:            ctrl,
		renderer:        renderer,
		mode:            modeList,
		input:           ti,
		addPriority:     model.DefaultPriority,
		confirmClearAll: true,
		status:          "Press 'a' to add a task.",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctrl *control.Controller, renderer *view.Renderer, opts ...Option) error {
	_, err := tea.NewProgram(New(ctrl, renderer, opts...)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmClear:
			return m.updateConfirmClear(msg.String())
		default:
			return m.updateList(msg.String())
		}
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}
	}
	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	rows := m.renderer.Current().Rows

	switch key {
	case "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case "a", "enter":
		m.mode = modeAdd
		m.input.SetValue("")
		m.status = "New task: Enter to add, tab to change priority, Esc to cancel."
		cmd := m.input.Focus()
		return m, cmd
	case " ", "x":
		if len(rows) == 0 {
			return m, nil
		}
		m = m.dispatch(control.ToggleRequested{ID: rows[m.cursor].ID}, "Toggled task")
	case "e":
		if len(rows) == 0 {
			return m, nil
		}
		row := rows[m.cursor]
		out, err := m.ctrl.Dispatch(control.EditStarted{ID: row.ID})
		if err != nil {
			return m.report(err, ""), nil
		}
		if !out.Editing {
			return m, nil
		}
		m.mode = modeEdit
		m.editPriority = row.Priority.OrDefault()
		m.input.SetValue(row.Text)
		m.input.CursorEnd()
		m = m.report(nil, "Editing: Enter to save, tab to change priority, Esc to cancel.")
		cmd := m.input.Focus()
		return m, cmd
	case "d":
		if len(rows) == 0 {
			return m, nil
		}
		m = m.dispatch(control.DeleteRequested{ID: rows[m.cursor].ID}, "Deleted task")
	case "c":
		out, err := m.ctrl.Dispatch(control.ClearCompletedRequested{})
		m = m.report(err, fmt.Sprintf("Cleared %d completed", out.Removed))
	case "X":
		if len(rows) == 0 {
			return m, nil
		}
		if !m.confirmClearAll {
			return m.clearAll(), nil
		}
		m.mode = modeConfirmClear
		m.status = fmt.Sprintf("Delete all %d tasks? y/n", len(rows))
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab":
		m.addPriority = m.addPriority.Next()
		return m, nil
	case "enter":
		out, err := m.ctrl.Dispatch(control.AddRequested{Text: m.input.Value(), Priority: m.addPriority})
		if err != nil {
			return m.report(err, ""), nil
		}
		if !out.Changed {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		m.input.SetValue("")
		m.cursor = clampCursor(len(m.renderer.Current().Rows)-1, len(m.renderer.Current().Rows))
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session, ok := m.renderer.Editing()
	if !ok {
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		_, err := m.ctrl.Dispatch(control.EditCancelled{ID: session.ID})
		m = m.leaveEdit()
		return m.report(err, "Edit cancelled"), nil
	case "tab":
		m.editPriority = m.editPriority.Next()
		m.dispatchDraft()
		return m, nil
	case "enter":
		out, err := m.ctrl.Dispatch(control.EditCommitted{
			ID:       session.ID,
			Text:     m.input.Value(),
			Priority: m.editPriority,
		})
		if err != nil {
			m = m.leaveEdit()
			return m.report(err, ""), nil
		}
		if out.Editing {
			m.status = "Task text cannot be empty"
			return m, nil
		}
		m = m.leaveEdit()
		m.status = "Saved"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.dispatchDraft()
		return m, cmd
	}
}

func (m Model) updateConfirmClear(key string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(key) {
	case "y":
		return m.clearAll(), nil
	default:
		_, _ = m.ctrl.Dispatch(control.ClearAllRequested{Confirmed: false})
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	}
}

func (m Model) clearAll() Model {
	out, err := m.ctrl.Dispatch(control.ClearAllRequested{Confirmed: true})
	m.mode = modeList
	m.cursor = 0
	return m.report(err, fmt.Sprintf("Deleted %d tasks", out.Removed))
}

func (m Model) dispatchDraft() {
	_, _ = m.ctrl.Dispatch(control.DraftChanged{Text: m.input.Value(), Priority: m.editPriority})
}

func (m Model) leaveEdit() Model {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) dispatch(e control.Event, success string) Model {
	_, err := m.ctrl.Dispatch(e)
	m = m.report(err, success)
	m.cursor = clampCursor(m.cursor, len(m.renderer.Current().Rows))
	return m
}

func (m Model) report(err error, success string) Model {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return m
	}
	m.status = success
	m.statusErr = false
	return m
}

func (m Model) View() string {
	frame := m.renderer.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n\n")

	if frame.Empty {
		b.WriteString(mutedStyle.Render("No tasks yet."))
		b.WriteString("\n")
	}
	for i, row := range frame.Rows {
		b.WriteString(m.renderRow(i, row))
		b.WriteString("\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(priorityLabel(m.addPriority))
		b.WriteString(" ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if frame.Stats != nil {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(frame.Stats.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(errStatusStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpText))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(i int, row view.Row) string {
	cursor := "  "
	if i == m.cursor && m.mode != modeAdd {
		cursor = cursorStyle.Render("> ")
	}

	box := "[ ]"
	if row.Completed {
		box = "[x]"
	}

	if row.Editing && m.mode == modeEdit {
		return fmt.Sprintf("%s%s %s %s", cursor, box, priorityLabel(m.editPriority), m.input.View())
	}

	text := row.Text
	if row.Completed {
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s%s %s %s", cursor, box, priorityLabel(row.Priority.OrDefault()), text)
}

func priorityLabel(p model.Priority) string {
	label := fmt.Sprintf("[%s]", p)
	switch p {
	case model.PriorityHigh:
		return highStyle.Render(label)
	case model.PriorityMedium:
		return mediumStyle.Render(label)
	default:
		return lowStyle.Render(label)
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
