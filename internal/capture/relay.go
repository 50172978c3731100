package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/resumesavvy/interview-agent/internal/config"
	"go.uber.org/zap"
)

// endOfStream tells the relay endpoint that no more audio follows.
const endOfStream = "EOS"

// transcriptWait bounds how long the relay may take to answer after the
// end-of-stream token is sent. Recording itself has no time limit.
var transcriptWait = 30 * time.Second

// RelayTransport streams raw microphone audio to the backend's websocket
// relay and receives a single final transcript back. It produces no interim
// fragments.
type RelayTransport struct {
	cfg    config.CaptureConfig
	wsURL  string
	logger *zap.Logger

	mu      sync.Mutex
	session *relaySession
}

type relaySession struct {
	conn *websocket.Conn
	mic  *exec.Cmd

	bufMu sync.Mutex
	buf   bytes.Buffer

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewRelayTransport(cfg config.CaptureConfig, backendBaseURL string, logger *zap.Logger) (*RelayTransport, error) {
	wsURL, err := RelayURL(backendBaseURL)
	if err != nil {
		return nil, err
	}
	return &RelayTransport{
		cfg:    cfg,
		wsURL:  wsURL,
		logger: logger,
	}, nil
}

// RelayURL derives the websocket relay address from the backend base URL:
// the scheme switches to ws (wss for https) and the path becomes /ws/stt.
func RelayURL(backendBaseURL string) (string, error) {
	u, err := url.Parse(backendBaseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported backend scheme %q", u.Scheme)
	}
	u.Path = "/ws/stt"
	u.RawQuery = ""
	return u.String(), nil
}

// Start opens the microphone and dials the relay. If either step fails,
// nothing is left running and the error is returned; otherwise chunks start
// flowing only after the connection is confirmed open.
func (t *RelayTransport) Start(ctx context.Context, events Events) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != nil {
		return fmt.Errorf("capture already running")
	}

	args, err := shellwords.NewParser().Parse(t.cfg.MicrophoneCommand)
	if err != nil || len(args) == 0 {
		return fmt.Errorf("parse microphone command: %w", err)
	}

	mic := exec.CommandContext(ctx, args[0], args[1:]...)
	micOut, err := mic.StdoutPipe()
	if err != nil {
		return fmt.Errorf("microphone stdout: %w", err)
	}
	if err := mic.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoCaptureDevice, err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.wsURL, nil)
	if err != nil {
		mic.Process.Kill()
		mic.Wait()
		return fmt.Errorf("dial stt relay: %w", err)
	}

	s := &relaySession{
		conn:   conn,
		mic:    mic,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	t.session = s

	go s.readMicrophone(micOut, t.logger)
	go s.pump(t.cfg.ChunkInterval, t.logger)
	go s.receive(events, t.logger, func() {
		t.mu.Lock()
		t.session = nil
		t.mu.Unlock()
	})

	return nil
}

// Stop ends the recording: the microphone is closed, buffered audio is
// flushed and the end-of-stream token is sent. The final transcript still
// arrives through Events before OnEnd fires.
func (t *RelayTransport) Stop() {
	t.mu.Lock()
	s := t.session
	t.mu.Unlock()

	if s == nil {
		return
	}

	s.stop()
	<-s.done
}

func (s *relaySession) stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// readMicrophone drains the microphone process into the chunk buffer until
// the process exits.
func (s *relaySession) readMicrophone(out io.Reader, logger *zap.Logger) {
	chunk := make([]byte, 16*1024)
	for {
		n, err := out.Read(chunk)
		if n > 0 {
			s.bufMu.Lock()
			s.buf.Write(chunk[:n])
			s.bufMu.Unlock()
		}
		if err != nil {
			if err != io.EOF {
				logger.Debug("microphone stream closed", zap.Error(err))
			}
			return
		}
	}
}

// pump ships buffered audio as binary frames on every tick. Empty buffers
// produce no frame. On stop it flushes once more, then sends the token.
func (s *relaySession) pump(interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.flush(); err != nil {
				logger.Warn("failed to send audio chunk", zap.Error(err))
				s.stop()
				return
			}
		case <-s.stopCh:
			s.mic.Process.Kill()
			s.mic.Wait()
			if err := s.flush(); err != nil {
				logger.Warn("failed to flush audio", zap.Error(err))
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, []byte(endOfStream)); err != nil {
				logger.Warn("failed to send end-of-stream token", zap.Error(err))
			}
			return
		}
	}
}

func (s *relaySession) flush() error {
	s.bufMu.Lock()
	data := append([]byte{}, s.buf.Bytes()...)
	s.buf.Reset()
	s.bufMu.Unlock()

	if len(data) == 0 {
		return nil
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// receive waits for the single text reply carrying the final transcript. The
// read deadline is armed only once the end-of-stream token goes out: until
// the user stops, the session may record for as long as they keep talking.
func (s *relaySession) receive(events Events, logger *zap.Logger, cleanup func()) {
	defer close(s.done)
	defer cleanup()
	defer events.end()
	defer s.conn.Close()
	defer s.stop()

	go func() {
		select {
		case <-s.stopCh:
			s.conn.SetReadDeadline(time.Now().Add(transcriptWait))
		case <-s.done:
		}
	}()

	for {
		msgType, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				events.fail(fmt.Errorf("%w: relay closed: %v", ErrRecognition, err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if text := string(payload); text != "" {
			events.fragment(text, true)
		}
		return
	}
}
