package capture

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestCommandRecognizerReadsStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell commands")
	}

	r := NewCommandRecognizer("echo buy milk")
	text, err := r.Recognize(context.Background())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if text != "buy milk" {
		t.Errorf("Recognize() = %q, want %q", text, "buy milk")
	}
}

func TestCommandRecognizerSilentCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell commands")
	}

	r := NewCommandRecognizer("true")
	if _, err := r.Recognize(context.Background()); !errors.Is(err, ErrNoSpeech) {
		t.Errorf("Recognize() error = %v, want ErrNoSpeech", err)
	}
}

func TestRecognizerAvailability(t *testing.T) {
	if NewCommandRecognizer("").Available() {
		t.Error("empty command line reported available")
	}
	if !NewCommandRecognizer("arecord -f cd").Available() {
		t.Error("configured command reported unavailable")
	}
	if NewRecorder("").Available() {
		t.Error("empty record command reported available")
	}
}
