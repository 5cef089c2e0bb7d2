// Package prompt provides a one-line text prompt used for quick
// entries that do not warrant a full form, such as subtask text.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/theme"
)

// SubmitMsg is emitted when the user submits a non-empty value.
type SubmitMsg struct {
	Value string
}

// CancelMsg is emitted when the user dismisses the prompt.
type CancelMsg struct{}

// Model is the one-line prompt view.
type Model struct {
	input  textinput.Model
	title  string
	width  int
	height int
}

// New creates a new prompt model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Start prepares the prompt with a title and placeholder and focuses
// the input.
func (m *Model) Start(title, placeholder string) tea.Cmd {
	m.title = title
	m.input.Placeholder = placeholder
	m.input.Reset()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// Update handles messages for the prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if value != "" {
				return m, func() tea.Msg {
					return SubmitMsg{Value: value}
				}
			}
			return m, nil
		case "esc":
			m.input.Reset()
			return m, func() tea.Msg {
				return CancelMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render(m.title)
	input := m.input.View()

	content := lipgloss.JoinVertical(lipgloss.Left, title, input)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the prompt dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}
