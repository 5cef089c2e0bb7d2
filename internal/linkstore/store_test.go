package linkstore

import (
	"testing"

	"github.com/nhle/voicedesk/internal/model"
	"github.com/nhle/voicedesk/internal/storage"
	"github.com/nhle/voicedesk/tests/testutil"
)

func newStore(t *testing.T) (*Store, *storage.KV) {
	t.Helper()
	kv := testutil.NewKV(t)
	s := New(kv, "")
	s.Load()
	return s, kv
}

// persisted reads the stored collection back the way a restart would.
func persisted(t *testing.T, kv *storage.KV) []model.Link {
	t.Helper()
	fresh := New(kv, "")
	fresh.Load()
	return fresh.Links()
}

func TestAddNormalizesScheme(t *testing.T) {
	s, kv := newStore(t)

	if !s.Add("github.com/octocat") {
		t.Fatal("Add returned false")
	}

	link := s.Links()[0]
	if link.URL != "https://github.com/octocat" {
		t.Errorf("url = %q, want https scheme prepended", link.URL)
	}
	if link.Description != "Octocat — github.com" {
		t.Errorf("description = %q", link.Description)
	}
	if got := persisted(t, kv); got[0].URL != link.URL {
		t.Errorf("persisted url = %q", got[0].URL)
	}
}

func TestAddKeepsExplicitScheme(t *testing.T) {
	s, _ := newStore(t)

	s.Add("http://example.org/reading-list")
	if got := s.Links()[0].URL; got != "http://example.org/reading-list" {
		t.Errorf("url = %q, want scheme untouched", got)
	}
}

func TestAddPrepends(t *testing.T) {
	s, _ := newStore(t)

	s.Add("example.com/first")
	s.Add("example.com/second")

	links := s.Links()
	if links[0].URL != "https://example.com/second" || links[1].URL != "https://example.com/first" {
		t.Errorf("order wrong: %q, %q", links[0].URL, links[1].URL)
	}
}

func TestAddDeclinesBadInput(t *testing.T) {
	s, kv := newStore(t)

	if s.Add("") {
		t.Error("empty add accepted")
	}
	if s.Add("   ") {
		t.Error("whitespace add accepted")
	}
	if s.Add("https://") {
		t.Error("hostless url accepted")
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}

	var stored []model.Link
	if kv.Get(storage.KeyLinks, &stored) {
		t.Error("declined add reached storage")
	}
}

func TestAddTranscriptSpokenURL(t *testing.T) {
	s, kv := newStore(t)

	if !s.AddTranscript("github dot com slash octocat") {
		t.Fatal("AddTranscript returned false")
	}

	link := s.Links()[0]
	if link.URL != "https://github.com/octocat" {
		t.Errorf("url = %q, want https://github.com/octocat", link.URL)
	}
	if link.Description != "Octocat — github.com" {
		t.Errorf("description = %q", link.Description)
	}
	if got := persisted(t, kv); got[0].URL != link.URL {
		t.Errorf("persisted url = %q", got[0].URL)
	}
}

func TestAddTranscriptSearchFallback(t *testing.T) {
	kv := testutil.NewKV(t)
	s := New(kv, "https://search.example/?q=")
	s.Load()

	if !s.AddTranscript("buy milk") {
		t.Fatal("AddTranscript returned false")
	}

	link := s.Links()[0]
	if link.URL != "https://search.example/?q=buy+milk" {
		t.Errorf("url = %q, want encoded search query", link.URL)
	}
	if link.Description != "buy milk" {
		t.Errorf("description = %q, want the spoken phrase", link.Description)
	}
}

func TestAddTranscriptEmptyNoOp(t *testing.T) {
	s, _ := newStore(t)
	if s.AddTranscript("  ") {
		t.Error("empty transcript accepted")
	}
}

func TestUpdateDescription(t *testing.T) {
	s, kv := newStore(t)
	s.Add("example.com/article-one")
	id := s.Links()[0].ID

	if !s.UpdateDescription(id, "better title") {
		t.Fatal("UpdateDescription failed")
	}
	if got := persisted(t, kv)[0].Description; got != "better title" {
		t.Errorf("persisted description = %q", got)
	}

	// Empty text keeps the previous description.
	if !s.UpdateDescription(id, "   ") {
		t.Fatal("empty update should still succeed")
	}
	if got := s.Links()[0].Description; got != "better title" {
		t.Errorf("description = %q, want previous kept", got)
	}

	if s.UpdateDescription("nope", "x") {
		t.Error("unknown id updated")
	}
}

func TestRemove(t *testing.T) {
	s, kv := newStore(t)
	s.Add("example.com/keep")
	s.Add("example.com/drop")
	id := s.Links()[0].ID // drop

	if !s.Remove(id) {
		t.Fatal("remove failed")
	}
	if s.Remove("nope") {
		t.Error("unknown id removed")
	}

	stored := persisted(t, kv)
	if len(stored) != 1 || stored[0].URL != "https://example.com/keep" {
		t.Errorf("persisted = %#v", stored)
	}
}

func TestCorruptCollectionFallsBackEmpty(t *testing.T) {
	kv := testutil.NewKV(t)
	kv.SetRaw(storage.KeyLinks, `{"not":"a list"`)

	s := New(kv, "")
	s.Load()

	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
	if !s.Add("example.com/recovered") {
		t.Fatal("add after fallback failed")
	}
}
