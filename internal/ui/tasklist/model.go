package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/keys"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/taskstore"
	"github.com/nhle/voicedesk/internal/theme"
)

// SelectedTaskMsg is sent when the user opens a task's detail view.
type SelectedTaskMsg struct {
	TaskID string
}

// Model is the task list view. It renders day-grouped tasks with a
// manual cursor so expanded tasks can interleave subtask rows.
type Model struct {
	store  *taskstore.Store
	keys   *keys.KeyMap
	rows   []row
	cursor int
	offset int
	width  int
	height int
}

// New creates a task list over store.
func New(store *taskstore.Store, k *keys.KeyMap, width, height int) Model {
	m := Model{
		store:  store,
		keys:   k,
		width:  width,
		height: height,
	}
	m.Reload()
	return m
}

// Reload rebuilds the rows from the store's current visible tasks.
// Call after any mutation or filter change.
func (m *Model) Reload() {
	now := time.Now()
	m.rows = buildRows(m.store.Visible(now), m.store.IsExpanded, now)
	m.clampCursor()
}

// clampCursor keeps the cursor on a selectable row after the row set
// changed.
func (m *Model) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.rows[m.cursor].selectable() {
		m.scrollToCursor()
		return
	}
	// Prefer the next selectable row, then the previous one.
	for i := m.cursor + 1; i < len(m.rows); i++ {
		if m.rows[i].selectable() {
			m.cursor = i
			m.scrollToCursor()
			return
		}
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].selectable() {
			m.cursor = i
			m.scrollToCursor()
			return
		}
	}
	m.cursor = 0
	m.offset = 0
}

// moveCursor steps to the next selectable row in the given direction.
func (m *Model) moveCursor(delta int) {
	for i := m.cursor + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].selectable() {
			m.cursor = i
			m.scrollToCursor()
			return
		}
	}
}

func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRows is how many rows fit under the summary line.
func (m Model) visibleRows() int {
	v := m.height - 2
	if v < 1 {
		v = 1
	}
	return v
}

// SelectedTask returns the task under the cursor. On a subtask row it
// returns the parent task.
func (m Model) SelectedTask() (model.Task, bool) {
	if m.cursor >= len(m.rows) {
		return model.Task{}, false
	}
	switch r := m.rows[m.cursor]; r.kind {
	case rowTask:
		return r.task, true
	case rowSubtask:
		return m.store.Get(r.parentID)
	default:
		return model.Task{}, false
	}
}

// SelectedSubtask returns the subtask under the cursor, with its
// parent task id.
func (m Model) SelectedSubtask() (string, model.Subtask, bool) {
	if m.cursor >= len(m.rows) {
		return "", model.Subtask{}, false
	}
	r := m.rows[m.cursor]
	if r.kind != rowSubtask {
		return "", model.Subtask{}, false
	}
	return r.parentID, r.subtask, true
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection. Mutation keys are handled
// by the root model, which reloads this view afterwards.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(keyMsg, m.keys.Select):
		if task, ok := m.SelectedTask(); ok {
			taskID := task.ID
			return m, func() tea.Msg {
				return SelectedTaskMsg{TaskID: taskID}
			}
		}
	}

	return m, nil
}

// View renders the summary line and the visible window of rows.
func (m Model) View() string {
	now := time.Now()

	if len(m.rows) == 0 {
		return m.renderEmptyState()
	}

	var b strings.Builder
	b.WriteString(theme.DimStyle.Render(m.summary(now)))
	b.WriteString("\n")

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		switch r.kind {
		case rowHeading:
			b.WriteString(theme.GroupHeadingStyle.Render(r.label))
		case rowTask:
			b.WriteString(renderTaskRow(r.task, i == m.cursor, now))
		case rowSubtask:
			b.WriteString(renderSubtaskRow(r.subtask, i == m.cursor))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// summary describes the active filter, sort, and collection progress.
func (m Model) summary(now time.Time) string {
	p := m.store.Progress(now)
	s := fmt.Sprintf(
		"%s · %s | %d/%d done (%d%%)",
		m.store.CurrentFilter(), m.store.CurrentSort(),
		p.Done, p.Total, p.Percent,
	)
	if p.Overdue > 0 {
		s += fmt.Sprintf(" · %d overdue", p.Overdue)
	}
	return s
}

// renderEmptyState shows guidance text when no rows are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.store.Len() > 0 {
		return style.Render(
			"No matching tasks.\nPress 'f' to change the filter.",
		)
	}
	return style.Render(
		"No tasks yet.\n\nPress 'a' to add one, or 'v' to dictate.",
	)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToCursor()
}
