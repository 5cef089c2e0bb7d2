package linkstore

import "testing"

func TestAutoDescribe(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"slug segment", "https://example.com/my-great-post", "My great post — example.com"},
		{"numeric only segment", "https://example.com/2024", "Example.com"},
		{"no path", "https://example.com", "Example.com"},
		{"www stripped", "https://www.example.com/", "Example.com"},
		{"numeric tail skipped", "https://example.com/blog/2024", "Blog — example.com"},
		{"single char segment skipped", "https://example.com/a", "Example.com"},
		{"underscores", "https://example.com/my_notes/7", "My notes — example.com"},
		{"trailing slash", "https://news.ycombinator.com/item-page/", "Item page — news.ycombinator.com"},
		{"not a url", "hello world", "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoDescribe(tt.raw); got != tt.want {
				t.Errorf("AutoDescribe(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestInterpretTranscript(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"spoken path", "github dot com slash octocat", "https://github.com/octocat", true},
		{"bare domain", "example dot com", "https://example.com", true},
		{"double tld", "bbc dot co dot uk", "https://bbc.co.uk", true},
		{"whitespace stripped", "my blog dot dev", "https://myblog.dev", true},
		{"plain phrase", "buy milk", "", false},
		{"tld word but no domain", "open the app", "", false},
		{"empty", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := interpretTranscript(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("interpretTranscript(%q) = %q, %v; want %q, %v",
					tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
