package mailbox

import (
	"testing"

	"github.com/nhle/voicedesk/internal/source"
)

func TestParseSubject(t *testing.T) {
	tests := []struct {
		subject  string
		wantKind source.ItemKind
		wantText string
		wantOK   bool
	}{
		{"task: buy milk", source.ItemTask, "buy milk", true},
		{"todo: call the dentist", source.ItemTask, "call the dentist", true},
		{"link: https://example.com", source.ItemLink, "https://example.com", true},
		{"save: example dot com", source.ItemLink, "example dot com", true},
		{"TASK: shout less", source.ItemTask, "shout less", true},
		{"  task:   padded   ", source.ItemTask, "padded", true},
		{"task:", source.ItemTask, "", true},
		{"Re: task: buy milk", "", "", false},
		{"weekly report", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		kind, text, ok := parseSubject(tt.subject)
		if ok != tt.wantOK {
			t.Errorf("parseSubject(%q) ok = %v, want %v", tt.subject, ok, tt.wantOK)
			continue
		}
		if kind != tt.wantKind || text != tt.wantText {
			t.Errorf("parseSubject(%q) = (%q, %q), want (%q, %q)",
				tt.subject, kind, text, tt.wantKind, tt.wantText)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"buy milk\nand eggs", "buy milk"},
		{"\n\n  buy milk  \n", "buy milk"},
		{"\r\nbuy milk\r\n", "buy milk"},
		{"   \n\t\n", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstLine(tt.body); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestTextBodyPlainFallback(t *testing.T) {
	raw := []byte("not a MIME message, just text")
	if got := textBody(raw); got != string(raw) {
		t.Errorf("textBody() = %q, want the raw text back", got)
	}
	if got := textBody(nil); got != "" {
		t.Errorf("textBody(nil) = %q, want empty", got)
	}
}
