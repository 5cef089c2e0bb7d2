package model

import (
	"time"

	"github.com/google/uuid"
)

// Notice severity levels.
const (
	NoticeInfo  = "info"
	NoticeWarn  = "warn"
	NoticeError = "error"
)

// Notice is a transient status message surfaced to the user in the
// status bar.
type Notice struct {
	// ID is the unique identifier for this notice.
	ID string `json:"id"`

	// Level is one of the notice severity constants.
	Level string `json:"level"`

	// Message is the human-readable text.
	Message string `json:"message"`

	// CreatedAt is when this notice was raised.
	CreatedAt time.Time `json:"created_at"`
}

// NewNotice builds a notice with a fresh identifier.
func NewNotice(level, message string) Notice {
	return Notice{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
