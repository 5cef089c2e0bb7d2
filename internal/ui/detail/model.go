package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/keys"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the task detail view component.
type Model struct {
	task   *model.Task
	keys   *keys.KeyMap
	view   viewport.Model
	width  int
	height int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		keys:   keys,
		view:   vp,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.task == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No task selected")
	}

	return m.view.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.task == nil {
		return ""
	}

	task := m.task
	now := time.Now()
	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := task.Text
	if task.Done {
		title = theme.DoneStyle.Render(title)
	} else {
		title = titleStyle.Render(title)
	}
	sections = append(sections, title)

	// Badges line: state + priority
	state := "ACTIVE"
	stateStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	if task.Done {
		state = "DONE"
		stateStyle = stateStyle.Foreground(theme.ColorGreen)
	} else if task.Overdue(now) {
		state = "OVERDUE"
		stateStyle = stateStyle.Foreground(theme.ColorRed)
	}

	priBadge := theme.PriorityStyle(task.Priority).Render(
		strings.ToUpper(task.Priority),
	)

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, stateStyle.Render(state), "  ", priBadge,
	)
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	if task.Deadline != "" {
		deadline := valStyle.Render(task.Deadline)
		if task.Overdue(now) {
			deadline = theme.OverdueStyle.Render(task.Deadline + " (overdue)")
		} else if task.DueSoon(now) {
			deadline = theme.DueSoonStyle.Render(task.Deadline + " (due soon)")
		}
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Deadline:"),
			deadline,
		))
	}
	if len(task.Categories) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Category:"),
			theme.CategoryStyle.Render(strings.Join(task.Categories, ", ")),
		))
	}
	sections = append(sections, fmt.Sprintf(
		"%s   %s",
		metaStyle.Render("Created:"),
		valStyle.Render(task.CreatedTime().Format("2006-01-02 15:04")),
	))

	// Subtask checklist
	if len(task.Subtasks) > 0 {
		sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
		separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		done, total := task.SubtaskProgress()
		headerStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)
		sections = append(sections, headerStyle.Render(
			fmt.Sprintf("Subtasks (%d/%d)", done, total),
		))
		sections = append(sections, "")

		for _, st := range task.Subtasks {
			if st.Done {
				sections = append(sections, theme.DoneStyle.Render("[x] "+st.Text))
			} else {
				sections = append(sections, valStyle.Render("[ ] "+st.Text))
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetTask updates the task being displayed and re-renders the content.
func (m *Model) SetTask(task model.Task) {
	m.task = &task
	m.view.SetContent(m.renderContent())
	m.view.GotoTop()
}

// TaskID returns the ID of the task on display, or "" when none is.
func (m Model) TaskID() string {
	if m.task == nil {
		return ""
	}
	return m.task.ID
}

// Refresh re-renders the content, keeping the scroll position.
func (m *Model) Refresh(task model.Task) {
	m.task = &task
	m.view.SetContent(m.renderContent())
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.view.Width = width
	m.view.Height = height - 2
	if m.task != nil {
		m.view.SetContent(m.renderContent())
	}
}
