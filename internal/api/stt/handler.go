package stt

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/resumesavvy/interview-agent/internal/pkg/logger"
	"github.com/resumesavvy/interview-agent/internal/pkg/validator"
	"go.uber.org/zap"
)

// endOfStream is the text token a client sends to mark the end of its audio.
const endOfStream = "EOS"

const (
	readDeadline  = 90 * time.Second
	writeDeadline = 10 * time.Second
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type Handler struct {
	transcriber Transcriber
	validator   *validator.Validator
	metrics     *metrics.Metrics
	upgrader    websocket.Upgrader
}

func NewHandler(transcriber Transcriber, validator *validator.Validator, m *metrics.Metrics) *Handler {
	return &Handler{
		transcriber: transcriber,
		validator:   validator,
		metrics:     m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 4 * 1024,
			// Browsers on other origins are allowed, matching the CORS policy
			// of the REST endpoints.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Relay handles GET /ws/stt. The client streams binary audio chunks, then
// signals completion with the end-of-stream token (or by closing). The relay
// replies with exactly one text message containing the final transcript.
func (h *Handler) Relay(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SttRelay")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		ctxzap.Error(ctx, "websocket upgrade failed", zap.Error(err))
		h.metrics.RequestErrors.WithLabelValues("stt_relay").Inc()
		return
	}
	defer conn.Close()

	// The default handler echoes the close frame before we had a chance to
	// reply; the transcript must go out first.
	conn.SetCloseHandler(func(code int, text string) error { return nil })

	h.metrics.RelaySessions.Inc()
	ctxzap.Info(ctx, "stt relay session opened", zap.String("remote", conn.RemoteAddr().String()))

	var audio bytes.Buffer

	for {
		conn.SetReadDeadline(time.Now().Add(readDeadline))

		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				// Closing without the token also finalizes the stream.
				break
			}
			ctxzap.Warn(ctx, "stt relay read failed", zap.Error(err))
			h.metrics.RequestErrors.WithLabelValues("stt_relay").Inc()
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(payload) == 0 {
				continue
			}
			if err := h.validator.ValidateAudioChunk(int64(len(payload))); err != nil {
				ctxzap.Warn(ctx, "oversized audio chunk rejected", zap.Error(err))
				h.writeText(ctx, conn, "")
				return
			}
			audio.Write(payload)
		case websocket.TextMessage:
			if string(payload) == endOfStream {
				h.finalize(ctx, conn, audio.Bytes())
				return
			}
			ctxzap.Debug(ctx, "ignoring unexpected text message", zap.String("payload", string(payload)))
		}
	}

	h.finalize(ctx, conn, audio.Bytes())
}

func (h *Handler) finalize(ctx context.Context, conn *websocket.Conn, audio []byte) {
	if len(audio) == 0 {
		ctxzap.Info(ctx, "stt relay closed without audio")
		h.writeText(ctx, conn, "")
		return
	}

	ctxzap.Info(ctx, "transcribing relayed audio", zap.Int("size_bytes", len(audio)))

	transcript, err := h.transcriber.Transcribe(ctx, audio, "stream.webm")
	if err != nil {
		ctxzap.Error(ctx, "transcription failed", zap.Error(err))
		h.metrics.RequestErrors.WithLabelValues("stt_relay").Inc()
		h.writeText(ctx, conn, "")
		return
	}

	h.writeText(ctx, conn, transcript)
}

func (h *Handler) writeText(ctx context.Context, conn *websocket.Conn, text string) {
	conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		ctxzap.Warn(ctx, "failed to write transcript", zap.Error(err))
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
