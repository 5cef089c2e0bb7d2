// Package theme holds the color palette and shared lipgloss styles.
// Styles use adaptive colors; the active Mode decides which side of
// each pair renders.
package theme

import "github.com/charmbracelet/lipgloss"

// Mode selects the light or dark rendering of the adaptive palette.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode normalizes a stored theme value. Anything unrecognized
// falls back to dark.
func ParseMode(s string) Mode {
	if s == string(ModeLight) {
		return ModeLight
	}
	return ModeDark
}

// Toggle returns the other mode.
func Toggle(mode Mode) Mode {
	if mode == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// Apply switches lipgloss's adaptive color resolution to mode.
func Apply(mode Mode) {
	lipgloss.SetHasDarkBackground(mode == ModeDark)
}

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// GroupHeadingStyle labels day groups in the task list.
var GroupHeadingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorMagenta)

// DoneStyle renders completed entries.
var DoneStyle = lipgloss.NewStyle().
	Strikethrough(true).
	Foreground(ColorGray)

// DimStyle renders secondary text such as timestamps and counts.
var DimStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// OverdueStyle marks deadlines that have passed.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// DueSoonStyle marks deadlines landing today or tomorrow.
var DueSoonStyle = lipgloss.NewStyle().
	Foreground(ColorOrange)

// CategoryStyle renders category labels on a task row.
var CategoryStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta)

// CaptureStyle marks an active voice capture session.
var CaptureStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case "high":
		return base.Foreground(ColorRed)
	case "medium":
		return base.Foreground(ColorYellow)
	case "low":
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// NoticeStyle returns a color-coded style for the given notice level.
func NoticeStyle(level string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch level {
	case "error":
		return base.Foreground(ColorRed)
	case "warn":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGreen)
	}
}
