package storage

import (
	"reflect"
	"testing"
)

type testRecord struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Done  bool     `json:"done"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func newKV(t *testing.T) *KV {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return s
}

func TestRoundTrip(t *testing.T) {
	s := newKV(t)

	stored := []testRecord{
		{ID: "a1", Text: "first", Done: true, Tags: []string{"x", "y"}, Count: 2},
		{ID: "b2", Text: "second", Tags: []string{}},
	}
	s.Set("records", stored)

	var loaded []testRecord
	if !s.Get("records", &loaded) {
		t.Fatal("Get returned false for a stored key")
	}
	if !reflect.DeepEqual(loaded, stored) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", loaded, stored)
	}
}

func TestGetAbsentKeyKeepsDefault(t *testing.T) {
	s := newKV(t)

	loaded := []testRecord{{ID: "default"}}
	if s.Get("missing", &loaded) {
		t.Error("Get returned true for an absent key")
	}
	if len(loaded) != 1 || loaded[0].ID != "default" {
		t.Errorf("default clobbered: %#v", loaded)
	}
}

func TestGetCorruptValueKeepsDefault(t *testing.T) {
	s := newKV(t)
	s.SetRaw("records", "{definitely not json")

	loaded := []testRecord{{ID: "default"}}
	if s.Get("records", &loaded) {
		t.Error("Get returned true for a corrupt value")
	}
	if len(loaded) != 1 || loaded[0].ID != "default" {
		t.Errorf("default clobbered: %#v", loaded)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newKV(t)

	s.Set("theme", "light")
	s.Set("theme", "dark")

	var theme string
	if !s.Get("theme", &theme) {
		t.Fatal("Get returned false after Set")
	}
	if theme != "dark" {
		t.Errorf("theme = %q, want %q", theme, "dark")
	}
}

func TestRemove(t *testing.T) {
	s := newKV(t)

	s.Set("theme", "dark")
	s.Remove("theme")

	var theme string
	if s.Get("theme", &theme) {
		t.Error("Get returned true after Remove")
	}

	// Removing an absent key is fine.
	s.Remove("never-set")
}
