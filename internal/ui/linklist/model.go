package linklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/keys"
	"github.com/nhle/voicedesk/internal/linkstore"
	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/theme"
)

// SelectedLinkMsg is sent when the user picks a link to edit.
type SelectedLinkMsg struct {
	LinkID string
}

// Model is the link list view.
type Model struct {
	list   list.Model
	store  *linkstore.Store
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a link list over store.
func New(store *linkstore.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height-2)
	l.Title = "Links"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.HeaderStyle

	m := Model{
		list:   l,
		store:  store,
		keys:   k,
		width:  width,
		height: height,
	}
	m.Reload()
	return m
}

// Reload rebuilds the list items from the store. Returns a command the
// caller must dispatch so the list can settle its internal state.
func (m *Model) Reload() tea.Cmd {
	links := m.store.Links()
	items := make([]list.Item, len(links))
	for i, link := range links {
		items[i] = LinkItem{Link: link}
	}
	return m.list.SetItems(items)
}

// SelectedLink returns the link under the cursor.
func (m Model) SelectedLink() (model.Link, bool) {
	item, ok := m.list.SelectedItem().(LinkItem)
	if !ok {
		return model.Link{}, false
	}
	return item.Link, true
}

// Filtering reports whether the list's fuzzy filter input has focus,
// so the root model can leave keystrokes alone.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the link list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(keyMsg, m.keys.Select) {
			if link, ok := m.SelectedLink(); ok {
				linkID := link.ID
				return m, func() tea.Msg {
					return SelectedLinkMsg{LinkID: linkID}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the link list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render(
			"No links yet.\n\nPress 'a' to add one, or 'v' to dictate.",
		)
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
