// Package sync polls capture sources in the background and reports
// fetched items to the Bubble Tea runtime. Pollers never touch the
// stores; imports happen on the update loop.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/source"
)

// SyncState represents the current state of a source poll.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the poll state for a single source.
type SyncStatus struct {
	Source   string
	State    SyncState
	LastSync time.Time
	Error    error
}

// SyncResultMsg is a tea.Msg sent when a fetch completes. Items are
// pending imports; the receiver adds them to the stores and calls
// MarkProcessed on the source.
type SyncResultMsg struct {
	Source    string
	Items     []source.Item
	Error     error
	AuthError *AuthErrorMsg
}

// AuthErrorMsg is a tea.Msg sent when a source rejects its credentials.
type AuthErrorMsg struct {
	Source  string
	Message string
}

// fetchTimeout is the maximum time allowed for a single fetch.
const fetchTimeout = 30 * time.Second

// Poller orchestrates background polling of registered sources.
type Poller struct {
	sources  []source.Source
	interval time.Duration
	statuses map[string]*SyncStatus

	resultCh  chan SyncResultMsg
	triggerCh chan string
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
}

// New creates a poller that fetches every interval.
func New(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Poller{
		interval:  interval,
		statuses:  make(map[string]*SyncStatus),
		resultCh:  make(chan SyncResultMsg, 16),
		triggerCh: make(chan string, 16),
		stopCh:    make(chan struct{}),
	}
}

// Register adds a source to the poller. Call before Start.
func (p *Poller) Register(src source.Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sources = append(p.sources, src)
	p.statuses[src.Name()] = &SyncStatus{
		Source: src.Name(),
		State:  SyncIdle,
	}
}

// Start launches a polling goroutine per source and returns a command
// that subscribes to results. Returns nil when nothing is registered.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running || len(p.sources) == 0 {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	sources := make([]source.Source, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	for _, src := range sources {
		go p.pollSource(src)
	}

	return p.waitForResult()
}

// Stop halts all polling goroutines.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate poll of every registered source.
func (p *Poller) Refresh() {
	p.mu.Lock()
	sources := make([]source.Source, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	for _, src := range sources {
		select {
		case p.triggerCh <- src.Name():
		default:
			// Channel full; a poll is already pending.
		}
	}
}

// Statuses returns the current poll status of all registered sources.
func (p *Poller) Statuses() []SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]SyncStatus, 0, len(p.statuses))
	for _, s := range p.statuses {
		statuses = append(statuses, *s)
	}
	return statuses
}

// pollSource runs the polling loop for a single source.
func (p *Poller) pollSource(src source.Source) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	name := src.Name()

	// Initial fetch right away.
	p.fetch(src, name)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetch(src, name)
		case triggered := <-p.triggerCh:
			if triggered == name {
				p.fetch(src, name)
			}
		}
	}
}

// fetch performs a single fetch and reports the outcome on the result
// channel.
func (p *Poller) fetch(src source.Source, name string) {
	p.setStatus(name, SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	items, err := src.FetchItems(ctx)
	if err != nil {
		p.setStatus(name, SyncError, err)

		if source.IsAuthError(err) {
			p.sendResult(SyncResultMsg{
				Source: name,
				Error:  err,
				AuthError: &AuthErrorMsg{
					Source: name,
					Message: fmt.Sprintf(
						"%s: authentication failed. Update the account in settings.",
						name,
					),
				},
			})
			return
		}

		p.sendResult(SyncResultMsg{Source: name, Error: err})
		return
	}

	p.setStatus(name, SyncIdle, nil)
	if len(items) == 0 {
		return
	}

	p.sendResult(SyncResultMsg{Source: name, Items: items})
}

// setStatus updates the poll status for a source.
func (p *Poller) setStatus(name string, state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[name]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a SyncResultMsg without blocking. Dropped items are
// fetched again on the next poll because the source only skips what
// MarkProcessed has seen.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

// waitForResult returns a tea.Cmd that waits for the next result. The
// command resolves to nil once the poller stops, so a replaced poller
// does not strand its subscriber.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-p.resultCh:
			return result
		case <-p.stopCh:
			return nil
		}
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next fetch
// result. Call after processing a SyncResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
