// Package contracts/capture defines the voice capture session
// contract.
package contracts

// Capture runs at most one session at a time. A toggle starts
// listening; toggling again stops the session regardless of which
// collection it feeds.
//
// Backends, in precedence order:
//   1. Capture command: an external program whose stdout is the
//      finished transcript.
//   2. Record command + speech API: a program records microphone audio
//      into a WAV file, which is posted to an OpenAI-compatible
//      /audio/transcriptions endpoint.
//   3. Neither configured: capture is unsupported and the toggle is
//      ignored with a hint to open settings.
//
// Session lifecycle, reported as Bubble Tea messages:
//   StartedMsg                   - the session began listening
//   then at most ONE of:
//     ResultMsg  - a usable transcript
//     ErrorMsg   - the backend failed
//   then always:
//     StoppedMsg - the session is over
//
// Rules:
//   - A session that detects no speech delivers StoppedMsg only. The
//     user is never notified about silence.
//   - Stopping a session mid-listen still delivers whatever speech it
//     heard: the recorder is interrupted (not killed, so the WAV
//     header finalizes) and transcription runs on the partial audio
//     under a fresh timeout.
//   - Transcripts land in the collection the session was aimed at:
//     tasks get a new task, links go through transcript
//     interpretation.
