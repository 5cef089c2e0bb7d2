package sync

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/voicedesk/internal/source"
)

type fakeSource struct {
	name  string
	items []source.Item
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Validate(ctx context.Context) (string, error) {
	return f.name, nil
}

func (f *fakeSource) FetchItems(ctx context.Context) ([]source.Item, error) {
	return f.items, f.err
}

func (f *fakeSource) MarkProcessed(ctx context.Context, refs []string) error {
	return nil
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a subscription command")
	}
	msgs := make(chan tea.Msg, 1)
	go func() {
		msgs <- cmd()
	}()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poller result")
		return nil
	}
}

func TestPollerDeliversFetchedItems(t *testing.T) {
	src := &fakeSource{
		name: "mailbox",
		items: []source.Item{
			{Kind: source.ItemTask, Text: "buy milk", Ref: "41"},
			{Kind: source.ItemLink, Text: "https://example.com", Ref: "42"},
		},
	}

	p := New(time.Hour)
	p.Register(src)
	defer p.Stop()

	msg, ok := runCmd(t, p.Start()).(SyncResultMsg)
	if !ok {
		t.Fatal("expected a SyncResultMsg")
	}
	if msg.Error != nil {
		t.Fatalf("unexpected error: %v", msg.Error)
	}
	if msg.Source != "mailbox" {
		t.Errorf("source = %q, want %q", msg.Source, "mailbox")
	}
	if len(msg.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(msg.Items))
	}
	if msg.Items[0].Text != "buy milk" {
		t.Errorf("first item text = %q, want %q", msg.Items[0].Text, "buy milk")
	}

	statuses := p.Statuses()
	if len(statuses) != 1 || statuses[0].State != SyncIdle {
		t.Error("expected the source to be idle after a successful fetch")
	}
	if statuses[0].LastSync.IsZero() {
		t.Error("expected LastSync to be recorded")
	}
}

func TestPollerReportsAuthError(t *testing.T) {
	src := &fakeSource{
		name: "mailbox",
		err:  &source.AuthError{Source: "mailbox", Message: "bad password"},
	}

	p := New(time.Hour)
	p.Register(src)
	defer p.Stop()

	msg, ok := runCmd(t, p.Start()).(SyncResultMsg)
	if !ok {
		t.Fatal("expected a SyncResultMsg")
	}
	if msg.AuthError == nil {
		t.Fatal("expected an auth error message")
	}
	if !strings.Contains(msg.AuthError.Message, "settings") {
		t.Errorf("auth message %q should point at settings", msg.AuthError.Message)
	}
}

func TestPollerReportsFetchError(t *testing.T) {
	src := &fakeSource{name: "mailbox", err: errors.New("connection refused")}

	p := New(time.Hour)
	p.Register(src)
	defer p.Stop()

	msg, ok := runCmd(t, p.Start()).(SyncResultMsg)
	if !ok {
		t.Fatal("expected a SyncResultMsg")
	}
	if msg.Error == nil {
		t.Error("expected the fetch error to be reported")
	}
	if msg.AuthError != nil {
		t.Error("plain fetch errors should not be auth errors")
	}
}

func TestPollerWithoutSources(t *testing.T) {
	p := New(time.Hour)
	if p.Start() != nil {
		t.Error("expected no subscription without registered sources")
	}
}
