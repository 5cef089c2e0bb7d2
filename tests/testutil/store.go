package testutil

import (
	"testing"

	"github.com/nhle/voicedesk/internal/storage"
)

// NewKV creates an in-memory key-value store with all migrations applied.
// It automatically closes the store when the test completes.
func NewKV(t *testing.T) *storage.KV {
	t.Helper()

	s, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
