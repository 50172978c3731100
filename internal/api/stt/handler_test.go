package stt

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/resumesavvy/interview-agent/internal/pkg/validator"
	"github.com/smartystreets/goconvey/convey"
)

type fakeTranscriber struct {
	mu    sync.Mutex
	calls int
	audio []byte
	text  string
	err   error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.audio = append([]byte{}, audio...)
	return f.text, f.err
}

func newRelayServer(transcriber *fakeTranscriber) *httptest.Server {
	v := validator.NewFileValidator(config.FileUploadConfig{MaxAudioChunkSize: 1 << 20})
	h := NewHandler(transcriber, v, metrics.New())

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return httptest.NewServer(r)
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws/stt"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial relay: %v", err)
	}
	return conn
}

func TestRelay(t *testing.T) {
	convey.Convey("Given the websocket relay", t, func() {
		transcriber := &fakeTranscriber{text: "hello world"}
		server := newRelayServer(transcriber)
		defer server.Close()

		convey.Convey("When binary chunks are streamed followed by the end token", func() {
			conn := dial(t, server)
			defer conn.Close()

			convey.So(conn.WriteMessage(websocket.BinaryMessage, []byte("chunk-1")), convey.ShouldBeNil)
			convey.So(conn.WriteMessage(websocket.BinaryMessage, []byte("chunk-2")), convey.ShouldBeNil)
			convey.So(conn.WriteMessage(websocket.TextMessage, []byte("EOS")), convey.ShouldBeNil)

			msgType, payload, err := conn.ReadMessage()

			convey.Convey("Then exactly one text message carries the transcript", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(msgType, convey.ShouldEqual, websocket.TextMessage)
				convey.So(string(payload), convey.ShouldEqual, "hello world")
				convey.So(transcriber.calls, convey.ShouldEqual, 1)
				convey.So(string(transcriber.audio), convey.ShouldEqual, "chunk-1chunk-2")
			})

			convey.Convey("And the server closes the connection afterwards", func() {
				_, _, err := conn.ReadMessage()
				convey.So(websocket.IsCloseError(err, websocket.CloseNormalClosure), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When empty binary frames are interleaved", func() {
			conn := dial(t, server)
			defer conn.Close()

			convey.So(conn.WriteMessage(websocket.BinaryMessage, []byte{}), convey.ShouldBeNil)
			convey.So(conn.WriteMessage(websocket.BinaryMessage, []byte("audio")), convey.ShouldBeNil)
			convey.So(conn.WriteMessage(websocket.TextMessage, []byte("EOS")), convey.ShouldBeNil)

			_, payload, err := conn.ReadMessage()
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(payload), convey.ShouldEqual, "hello world")
			convey.So(string(transcriber.audio), convey.ShouldEqual, "audio")
		})

		convey.Convey("When the client closes without the token", func() {
			conn := dial(t, server)

			convey.So(conn.WriteMessage(websocket.BinaryMessage, []byte("tail")), convey.ShouldBeNil)
			convey.So(conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")), convey.ShouldBeNil)

			_, payload, err := conn.ReadMessage()

			convey.Convey("Then the stream is still finalized", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(payload), convey.ShouldEqual, "hello world")
				convey.So(string(transcriber.audio), convey.ShouldEqual, "tail")
			})
			conn.Close()
		})

		convey.Convey("When no audio was sent at all", func() {
			conn := dial(t, server)
			defer conn.Close()

			convey.So(conn.WriteMessage(websocket.TextMessage, []byte("EOS")), convey.ShouldBeNil)

			_, payload, err := conn.ReadMessage()

			convey.Convey("Then an empty transcript is returned without transcription", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(payload), convey.ShouldEqual, "")
				convey.So(transcriber.calls, convey.ShouldEqual, 0)
			})
		})
	})
}
