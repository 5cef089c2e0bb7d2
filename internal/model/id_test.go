package model

import (
	"strconv"
	"testing"
	"time"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewIDTimestampPrefix(t *testing.T) {
	before := time.Now().UnixMilli()
	id := NewID()
	after := time.Now().UnixMilli()

	// Epoch milliseconds encode to a fixed base-36 width in this era.
	width := len(strconv.FormatInt(before, 36))
	if len(id) <= width {
		t.Fatalf("id %q shorter than its timestamp prefix", id)
	}
	ms, err := strconv.ParseInt(id[:width], 36, 64)
	if err != nil {
		t.Fatalf("parsing timestamp prefix of %q: %v", id, err)
	}
	if ms < before || ms > after {
		t.Errorf("timestamp %d outside [%d, %d]", ms, before, after)
	}
}
