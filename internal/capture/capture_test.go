package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/model"
)

// scriptedRecognizer returns a fixed transcript or error immediately.
type scriptedRecognizer struct {
	text string
	err  error
}

func (r *scriptedRecognizer) Available() bool { return true }

func (r *scriptedRecognizer) Recognize(ctx context.Context) (string, error) {
	return r.text, r.err
}

// listeningRecognizer blocks until the session is stopped, then
// returns whatever it was configured to have heard.
type listeningRecognizer struct {
	heard string
}

func (r *listeningRecognizer) Available() bool { return true }

func (r *listeningRecognizer) Recognize(ctx context.Context) (string, error) {
	<-ctx.Done()
	if r.heard == "" {
		return "", ctx.Err()
	}
	return r.heard, nil
}

func nextEvent(t *testing.T, m *Manager) tea.Msg {
	t.Helper()
	events := make(chan tea.Msg, 1)
	go func() {
		events <- m.WaitForEvent()()
	}()
	select {
	case msg := <-events:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for capture event")
		return nil
	}
}

func TestToggleDeliversResultThenStop(t *testing.T) {
	m := NewManager(&scriptedRecognizer{text: "buy milk"})

	m.Toggle(TargetTasks)

	started, ok := nextEvent(t, m).(StartedMsg)
	if !ok {
		t.Fatal("expected StartedMsg first")
	}
	if started.Target != TargetTasks {
		t.Errorf("started target = %q, want %q", started.Target, TargetTasks)
	}

	result, ok := nextEvent(t, m).(ResultMsg)
	if !ok {
		t.Fatal("expected ResultMsg after start")
	}
	if result.Text != "buy milk" {
		t.Errorf("result text = %q, want %q", result.Text, "buy milk")
	}
	if result.SessionID != started.SessionID {
		t.Errorf("result session = %q, want %q", result.SessionID, started.SessionID)
	}

	stopped, ok := nextEvent(t, m).(StoppedMsg)
	if !ok {
		t.Fatal("expected StoppedMsg last")
	}
	if stopped.SessionID != started.SessionID {
		t.Errorf("stopped session = %q, want %q", stopped.SessionID, started.SessionID)
	}
	if m.Active() {
		t.Error("manager still active after session ended")
	}
}

func TestToggleStopsActiveSession(t *testing.T) {
	m := NewManager(&listeningRecognizer{})

	m.Toggle(TargetLinks)
	if _, ok := nextEvent(t, m).(StartedMsg); !ok {
		t.Fatal("expected StartedMsg first")
	}
	if !m.Active() {
		t.Fatal("expected an active session")
	}
	if target, _ := m.ActiveTarget(); target != TargetLinks {
		t.Errorf("active target = %q, want %q", target, TargetLinks)
	}

	// Second toggle stops the session instead of starting another.
	m.Toggle(TargetLinks)
	if _, ok := nextEvent(t, m).(StoppedMsg); !ok {
		t.Fatal("expected StoppedMsg after stopping, with no result or error")
	}
	if m.Active() {
		t.Error("manager still active after stop")
	}
}

func TestStoppedSessionStillDeliversSpeech(t *testing.T) {
	m := NewManager(&listeningRecognizer{heard: "call the dentist"})

	m.Toggle(TargetTasks)
	if _, ok := nextEvent(t, m).(StartedMsg); !ok {
		t.Fatal("expected StartedMsg first")
	}

	m.Toggle(TargetTasks)

	result, ok := nextEvent(t, m).(ResultMsg)
	if !ok {
		t.Fatal("expected ResultMsg for speech heard before the stop")
	}
	if result.Text != "call the dentist" {
		t.Errorf("result text = %q, want %q", result.Text, "call the dentist")
	}
	if _, ok := nextEvent(t, m).(StoppedMsg); !ok {
		t.Fatal("expected StoppedMsg last")
	}
}

func TestRecognitionErrorDeliversErrorThenStop(t *testing.T) {
	m := NewManager(&scriptedRecognizer{err: errors.New("microphone unavailable")})

	m.Toggle(TargetTasks)
	if _, ok := nextEvent(t, m).(StartedMsg); !ok {
		t.Fatal("expected StartedMsg first")
	}

	errMsg, ok := nextEvent(t, m).(ErrorMsg)
	if !ok {
		t.Fatal("expected ErrorMsg for a failed session")
	}
	if errMsg.Message != "microphone unavailable" {
		t.Errorf("error message = %q, want %q", errMsg.Message, "microphone unavailable")
	}
	if _, ok := nextEvent(t, m).(StoppedMsg); !ok {
		t.Fatal("expected StoppedMsg after the error")
	}
}

func TestNoSpeechEndsQuietly(t *testing.T) {
	m := NewManager(&scriptedRecognizer{err: ErrNoSpeech})

	m.Toggle(TargetLinks)
	if _, ok := nextEvent(t, m).(StartedMsg); !ok {
		t.Fatal("expected StartedMsg first")
	}
	if _, ok := nextEvent(t, m).(StoppedMsg); !ok {
		t.Fatal("expected StoppedMsg with no error for a silent session")
	}
}

func TestSessionsRunOneAfterAnother(t *testing.T) {
	m := NewManager(&scriptedRecognizer{text: "first"})

	m.Toggle(TargetTasks)
	for i := 0; i < 3; i++ {
		nextEvent(t, m)
	}

	m.Toggle(TargetLinks)
	started, ok := nextEvent(t, m).(StartedMsg)
	if !ok {
		t.Fatal("expected a fresh session to start")
	}
	if started.Target != TargetLinks {
		t.Errorf("second session target = %q, want %q", started.Target, TargetLinks)
	}
	nextEvent(t, m)
	nextEvent(t, m)
}

func TestUnsupportedManagerIgnoresToggle(t *testing.T) {
	m := NewManager(nil)

	if m.Supported() {
		t.Fatal("nil recognizer should not be supported")
	}
	m.Toggle(TargetTasks)
	if m.Active() {
		t.Error("toggle on unsupported manager started a session")
	}
}

func TestFromConfigPrefersCaptureCommand(t *testing.T) {
	cfg := model.CaptureConfig{
		Command:       "say-something --listen",
		RecordCommand: "arecord -f cd -t wav",
		SpeechURL:     "https://api.example.com/v1",
		SpeechModel:   "whisper-1",
	}
	if _, ok := FromConfig(cfg, "key").(*CommandRecognizer); !ok {
		t.Error("expected the capture command to win")
	}

	cfg.Command = ""
	if _, ok := FromConfig(cfg, "key").(*APIRecognizer); !ok {
		t.Error("expected the record-and-transcribe pipeline")
	}

	if FromConfig(cfg, "") != nil {
		t.Error("expected no recognizer without an API key")
	}

	cfg.RecordCommand = ""
	if FromConfig(cfg, "key") != nil {
		t.Error("expected no recognizer without a record command")
	}
}
