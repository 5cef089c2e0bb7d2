package linkform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/theme"
)

// LinkAddedMsg is dispatched when a new link address is submitted.
type LinkAddedMsg struct {
	URL string
}

// DescriptionEditedMsg is dispatched when a link's description is
// submitted. Text may be empty; the store decides what that means.
type DescriptionEditedMsg struct {
	ID   string
	Text string
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings keeps huh's value pointers stable across model copies.
type formBindings struct {
	url         string
	description string
}

// Model is the Bubble Tea model for adding a link or editing its
// description.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new link form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for adding a link.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.url = ""
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing a link's description.
func (m *Model) StartEdit(link model.Link) tea.Cmd {
	m.editMode = true
	m.editID = link.ID
	m.fb.description = link.Description
	m.form = m.buildEditForm()
	return m.form.Init()
}

// Update handles messages for the link form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the link form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Link"
	if m.editMode {
		titleText = "Edit Description"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCreateForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Address").
				Description("The scheme is optional; https:// is assumed").
				Placeholder("example.com/article").
				Value(&m.fb.url).
				Validate(validateRequired("Address")),
		),
	).WithWidth(m.formWidth())
}

func (m *Model) buildEditForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				Description("Leave empty to keep the current text").
				Value(&m.fb.description),
		),
	).WithWidth(m.formWidth())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.editMode {
		id := m.editID
		text := m.fb.description
		return func() tea.Msg {
			return DescriptionEditedMsg{ID: id, Text: text}
		}
	}
	url := m.fb.url
	return func() tea.Msg {
		return LinkAddedMsg{URL: url}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
