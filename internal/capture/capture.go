// Package capture records candidate speech and turns it into text. Two
// transports exist: a native one driving a local recognition engine, and a
// socket relay streaming microphone audio to the backend's /ws/stt endpoint.
// Exactly one transport is active at a time; the probe picks it up front.
package capture

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Recognition errors surfaced to the caller. Unknown failures are wrapped in
// ErrRecognition.
var (
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrNoSpeech         = errors.New("no speech detected")
	ErrNoCaptureDevice  = errors.New("no audio capture device")
	ErrInsecureContext  = errors.New("speech capture requires a secure context")
	ErrRecognition      = errors.New("recognition failed")
)

// Events receives transport callbacks. All fields are optional; nil callbacks
// are skipped. A transport invokes callbacks from a single goroutine.
type Events struct {
	// OnFragment delivers recognized text. Interim fragments (final=false)
	// replace the previous interim one; final fragments are committed.
	OnFragment func(text string, final bool)
	OnError    func(err error)
	// OnEnd fires once when the transport has stopped producing fragments,
	// whether by Stop, end of speech, or failure.
	OnEnd func()
}

func (e Events) fragment(text string, final bool) {
	if e.OnFragment != nil {
		e.OnFragment(text, final)
	}
}

func (e Events) fail(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}

func (e Events) end() {
	if e.OnEnd != nil {
		e.OnEnd()
	}
}

// Transport captures one recording and reports fragments through Events.
type Transport interface {
	// Start begins capturing. It returns an error only when nothing was
	// started; once it returns nil, OnEnd is guaranteed to fire eventually.
	Start(ctx context.Context, events Events) error
	// Stop requests termination of an active capture. Calling Stop on an
	// idle transport is a no-op.
	Stop()
}

// Transcript accumulates fragments into the effective transcript: committed
// final text followed by the latest interim fragment, if any.
type Transcript struct {
	mu        sync.Mutex
	committed []string
	interim   string
}

// Apply records one fragment. Final fragments are appended to the committed
// text and clear the interim slot; interim ones overwrite it.
func (t *Transcript) Apply(text string, final bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if final {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			t.committed = append(t.committed, trimmed)
		}
		t.interim = ""
		return
	}
	t.interim = strings.TrimSpace(text)
}

// Effective returns the transcript as the candidate would see it right now.
func (t *Transcript) Effective() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	parts := t.committed
	if t.interim != "" {
		parts = append(append([]string{}, t.committed...), t.interim)
	}
	return strings.Join(parts, " ")
}

// Reset clears all accumulated text before a new recording.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed = nil
	t.interim = ""
}
