package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/nhle/voicedesk/internal/model"
)

// transcribeTimeout bounds the API call made after recording ends.
const transcribeTimeout = 30 * time.Second

// CommandRecognizer runs a user-provided program that listens to the
// microphone and prints the finished transcript on stdout.
type CommandRecognizer struct {
	command []string
}

// NewCommandRecognizer parses a command line into a recognizer.
func NewCommandRecognizer(commandLine string) *CommandRecognizer {
	return &CommandRecognizer{command: strings.Fields(commandLine)}
}

func (r *CommandRecognizer) Available() bool {
	return len(r.command) > 0
}

func (r *CommandRecognizer) Recognize(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", fmt.Errorf("no capture command configured")
	}

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = stopGrace

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		return "", fmt.Errorf("running capture command: %w", err)
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// APIRecognizer records audio locally and sends it to a speech API for
// transcription.
type APIRecognizer struct {
	recorder *Recorder
	client   *SpeechClient
}

// NewAPIRecognizer combines a recorder with a speech client.
func NewAPIRecognizer(recorder *Recorder, client *SpeechClient) *APIRecognizer {
	return &APIRecognizer{recorder: recorder, client: client}
}

func (r *APIRecognizer) Available() bool {
	return r.recorder.Available() && r.client.Configured()
}

func (r *APIRecognizer) Recognize(ctx context.Context) (string, error) {
	path, err := r.recorder.Record(ctx)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	// Stopping the session only ends the recording; transcription
	// still runs on whatever was captured.
	tctx, cancel := context.WithTimeout(context.Background(), transcribeTimeout)
	defer cancel()

	text, err := r.client.Transcribe(tctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// FromConfig builds the best available recognizer. An explicit capture
// command wins over the record-and-transcribe pipeline; nil means no
// backend is configured.
func FromConfig(cfg model.CaptureConfig, apiKey string) Recognizer {
	if cmd := NewCommandRecognizer(cfg.Command); cmd.Available() {
		return cmd
	}
	api := NewAPIRecognizer(
		NewRecorder(cfg.RecordCommand),
		NewSpeechClient(cfg.SpeechURL, apiKey, cfg.SpeechModel),
	)
	if api.Available() {
		return api
	}
	return nil
}
