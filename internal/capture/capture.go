// Package capture runs single-session voice capture. A toggle starts
// listening in the background; toggling again stops the session, which
// still delivers whatever speech it heard. At most one session exists
// at a time, and its lifecycle is reported as Bubble Tea messages.
package capture

import (
	"context"
	"errors"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Target names the collection a capture session feeds.
type Target string

const (
	TargetTasks Target = "tasks"
	TargetLinks Target = "links"
)

// ErrNoSpeech is returned by recognizers when a session produced no
// usable transcript. It ends the session without an error message.
var ErrNoSpeech = errors.New("no speech detected")

// Recognizer turns microphone audio into a transcript.
type Recognizer interface {
	// Available reports whether this recognizer is configured.
	Available() bool

	// Recognize blocks until a transcript is ready or ctx is
	// cancelled. Cancellation means "stop listening": a recognizer
	// may still return the text heard so far.
	Recognize(ctx context.Context) (string, error)
}

// StartedMsg reports that a session began listening.
type StartedMsg struct {
	SessionID string
	Target    Target
}

// ResultMsg carries a finished transcript.
type ResultMsg struct {
	SessionID string
	Target    Target
	Text      string
}

// ErrorMsg reports a failed session. No-speech endings are not errors
// and never produce one.
type ErrorMsg struct {
	SessionID string
	Target    Target
	Message   string
}

// StoppedMsg closes every session, after at most one ResultMsg or
// ErrorMsg.
type StoppedMsg struct {
	SessionID string
	Target    Target
}

// Manager owns the active capture session.
type Manager struct {
	mu         sync.Mutex
	recognizer Recognizer
	active     bool
	id         string
	target     Target
	cancel     context.CancelFunc

	eventCh chan tea.Msg
}

// NewManager creates a manager around recognizer, which may be nil
// when no capture backend is configured.
func NewManager(recognizer Recognizer) *Manager {
	return &Manager{
		recognizer: recognizer,
		eventCh:    make(chan tea.Msg, 16),
	}
}

// Supported reports whether voice capture can run at all.
func (m *Manager) Supported() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recognizer != nil && m.recognizer.Available()
}

// SetRecognizer swaps the speech backend, or disables capture when r
// is nil. A running session finishes with the recognizer it started
// with.
func (m *Manager) SetRecognizer(r Recognizer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recognizer = r
}

// Active reports whether a session is currently listening.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// ActiveTarget returns the collection the running session feeds.
func (m *Manager) ActiveTarget() (Target, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target, m.active
}

// Toggle starts a session for target or, when one is already running,
// stops it regardless of target. It returns immediately; lifecycle
// events arrive through WaitForEvent.
func (m *Manager) Toggle(target Target) {
	if !m.Supported() {
		return
	}

	m.mu.Lock()
	if m.active {
		cancel := m.cancel
		m.mu.Unlock()
		cancel()
		return
	}

	rec := m.recognizer
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()
	m.active = true
	m.id = id
	m.target = target
	m.cancel = cancel
	m.mu.Unlock()

	go m.run(ctx, rec, id, target)
}

func (m *Manager) run(ctx context.Context, rec Recognizer, id string, target Target) {
	m.send(StartedMsg{SessionID: id, Target: target})

	text, err := rec.Recognize(ctx)
	text = strings.TrimSpace(text)

	switch {
	case err == nil && text != "":
		m.send(ResultMsg{SessionID: id, Target: target, Text: text})
	case err == nil, errors.Is(err, ErrNoSpeech), errors.Is(err, context.Canceled):
		// Stopped or silent sessions end quietly.
	default:
		m.send(ErrorMsg{SessionID: id, Target: target, Message: err.Error()})
	}

	m.mu.Lock()
	if m.id == id {
		m.active = false
		m.cancel = nil
	}
	m.mu.Unlock()

	m.send(StoppedMsg{SessionID: id, Target: target})
}

func (m *Manager) send(msg tea.Msg) {
	m.eventCh <- msg
}

// WaitForEvent returns a command that delivers the next capture
// event. Issue it again after each message to keep the stream
// flowing.
func (m *Manager) WaitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.eventCh
	}
}
