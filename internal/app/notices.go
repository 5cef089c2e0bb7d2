package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/model"
)

// noticeTTL is how long a status-bar notice stays up.
const noticeTTL = 5 * time.Second

// noticeExpiredMsg retires the notice it was armed for. A newer notice
// carries a different id and survives the stale timer.
type noticeExpiredMsg struct {
	id string
}

// dayRolloverMsg fires at local midnight.
type dayRolloverMsg struct{}

// setNotice replaces the status-bar notice and arms its expiry.
func (m *Model) setNotice(level, message string) tea.Cmd {
	n := model.NewNotice(level, message)
	m.notice = n
	m.hasNotice = true
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: n.ID}
	})
}

// scheduleDayRollover arms a tick for the next local midnight, when
// day groupings and overdue states shift.
func scheduleDayRollover() tea.Cmd {
	now := time.Now()
	next := model.Midnight(now).AddDate(0, 0, 1)
	return tea.Tick(next.Sub(now), func(time.Time) tea.Msg {
		return dayRolloverMsg{}
	})
}
