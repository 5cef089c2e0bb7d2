package linklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/theme"
)

// LinkItem wraps a model.Link so it can be used in a bubbles/list.
type LinkItem struct {
	Link model.Link
}

// FilterValue returns the string used for fuzzy filtering.
func (i LinkItem) FilterValue() string {
	return i.Link.Description + " " + i.Link.URL
}

// Title returns the link description for the list.
func (i LinkItem) Title() string { return i.Link.Description }

// Description returns the address line for the list.
func (i LinkItem) Description() string { return i.Link.URL }

// Delegate implements list.ItemDelegate for rendering link rows.
type Delegate struct{}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a link as a two-line block: description, then address
// and age.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(LinkItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	title := li.Link.Description
	if title == "" {
		title = li.Link.URL
	}
	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(title)

	addressLine := theme.DimStyle.Render(fmt.Sprintf(
		"%s  %s", li.Link.URL, relativeTime(li.Link.CreatedTime()),
	))

	block := titleLine + "\n" + addressLine
	if isSelected {
		block = theme.SelectedItemStyle.Render(block)
	} else {
		block = theme.ListItemStyle.Render(block)
	}

	fmt.Fprint(w, block)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
