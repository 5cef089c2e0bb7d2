package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// stopGrace is how long a recorder process gets to finalize its output
// file after being interrupted.
const stopGrace = 2 * time.Second

// Recorder captures microphone audio to a temporary WAV file using an
// external program such as arecord or sox. The output path is appended
// as the program's final argument.
type Recorder struct {
	command []string
}

// NewRecorder parses a command line like "arecord -f cd -t wav".
func NewRecorder(commandLine string) *Recorder {
	return &Recorder{command: strings.Fields(commandLine)}
}

// Available reports whether a record command is configured.
func (r *Recorder) Available() bool {
	return len(r.command) > 0
}

// Record starts the recorder and blocks until it exits or ctx is
// cancelled. Cancellation interrupts the process and returns the audio
// captured so far, so a stopped session can still be transcribed. The
// caller removes the returned file.
func (r *Recorder) Record(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", fmt.Errorf("no record command configured")
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	out, err := os.CreateTemp("", "voicedesk-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating audio file: %w", err)
	}
	path := out.Name()
	out.Close()

	args := append(append([]string{}, r.command[1:]...), path)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	// An interrupt lets the recorder finalize the WAV header; a kill
	// would truncate it.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = stopGrace

	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		os.Remove(path)
		return "", fmt.Errorf("running record command: %w", err)
	}
	return path, nil
}
