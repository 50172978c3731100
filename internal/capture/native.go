package capture

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sync"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/resumesavvy/interview-agent/internal/config"
	"go.uber.org/zap"
)

// recognizerEvent is one line of the recognition engine's stdout stream.
type recognizerEvent struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	Error string `json:"error,omitempty"`
}

// NativeTransport drives a local recognition engine as a child process. The
// engine owns the microphone and emits newline-delimited JSON events; no
// audio leaves the machine.
type NativeTransport struct {
	args   []string
	lang   string
	logger *zap.Logger

	mu       sync.Mutex
	cmd      *exec.Cmd
	done     chan struct{}
	stopping bool
}

func NewNativeTransport(cfg config.CaptureConfig, logger *zap.Logger) (*NativeTransport, error) {
	args, err := shellwords.NewParser().Parse(cfg.RecognizerCommand)
	if err != nil {
		return nil, fmt.Errorf("parse recognizer command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("recognizer command is empty")
	}
	return &NativeTransport{
		args:   args,
		lang:   cfg.Language,
		logger: logger,
	}, nil
}

func (t *NativeTransport) Start(ctx context.Context, events Events) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cmd != nil {
		return fmt.Errorf("capture already running")
	}

	args := append([]string{}, t.args[1:]...)
	if t.lang != "" {
		args = append(args, "--language", t.lang)
	}

	cmd := exec.CommandContext(ctx, t.args[0], args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("recognizer stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start recognizer: %v", mapRecognitionError(err.Error()), err)
	}

	t.cmd = cmd
	t.done = make(chan struct{})
	t.stopping = false
	done := t.done

	go func() {
		defer close(done)
		defer events.end()

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var ev recognizerEvent
			if err := json.Unmarshal(line, &ev); err != nil {
				t.logger.Warn("unparseable recognizer event", zap.ByteString("line", line))
				continue
			}

			if ev.Error != "" {
				events.fail(mapRecognitionError(ev.Error))
				continue
			}
			events.fragment(ev.Text, ev.Final)
		}

		err := cmd.Wait()

		t.mu.Lock()
		stopped := t.stopping
		t.cmd = nil
		t.mu.Unlock()

		// Most engines exit via the interrupt signal on a deliberate Stop;
		// that is a natural end, not a failure.
		if err != nil && ctx.Err() == nil && !stopped {
			events.fail(fmt.Errorf("%w: recognizer exited: %v", ErrRecognition, err))
		}
	}()

	return nil
}

// Stop interrupts the recognizer, which flushes its final fragment before
// exiting. Idle transports ignore the call.
func (t *NativeTransport) Stop() {
	t.mu.Lock()
	cmd := t.cmd
	done := t.done
	if cmd != nil {
		t.stopping = true
	}
	t.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}
	if done != nil {
		<-done
	}
}

// mapRecognitionError translates engine error codes into the package's
// error taxonomy.
func mapRecognitionError(code string) error {
	switch code {
	case "not-allowed", "permission-denied", "service-not-allowed":
		return ErrPermissionDenied
	case "no-speech":
		return ErrNoSpeech
	case "audio-capture", "no-capture-device":
		return ErrNoCaptureDevice
	default:
		return fmt.Errorf("%w: %s", ErrRecognition, code)
	}
}
