package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/handpong/internal/log"
)

// sendChunk is the largest binary frame sent to the transcriber.
const sendChunk = 16 * 1024

// controlMessage is a JSON message sent to the transcriber.
type controlMessage struct {
	Type string `json:"type"`
}

// serverMessage is a JSON message received from the transcriber.
type serverMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// WSTranscriber implements Transcriber against a streaming speech-to-text
// websocket. Each phrase uses its own connection: binary PCM frames,
// then {"type":"end"}, then the reply {"type":"transcript","text":...}.
// "partial" messages are ignored and {"type":"error"} fails the phrase.
type WSTranscriber struct {
	endpoint     *url.URL
	dialer       websocket.Dialer
	replyTimeout time.Duration
	logger       *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewWSTranscriber creates a transcriber for cfg.TranscriberURL.
func NewWSTranscriber(cfg Config, logger *slog.Logger) (*WSTranscriber, error) {
	u, err := url.Parse(cfg.TranscriberURL)
	if err != nil {
		return nil, fmt.Errorf("parse transcriber url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("transcriber url must be ws or wss, got %q", u.Scheme)
	}

	return &WSTranscriber{
		endpoint:     u,
		dialer:       websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
		replyTimeout: cfg.ReplyTimeout,
		logger:       log.Or(logger).With("component", "transcriber"),
	}, nil
}

// Transcribe sends one phrase and waits for its transcript.
func (t *WSTranscriber) Transcribe(ctx context.Context, p Phrase) (string, error) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return "", ErrTranscriberClosed
	}
	if len(p.PCM) == 0 {
		return "", ErrNoSpeech
	}

	conn, _, err := t.dialer.DialContext(ctx, t.url(p.SampleRate), nil)
	if err != nil {
		return "", fmt.Errorf("connect transcriber: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for off := 0; off < len(p.PCM); off += sendChunk {
		end := min(off+sendChunk, len(p.PCM))
		if err := conn.WriteMessage(websocket.BinaryMessage, p.PCM[off:end]); err != nil {
			return "", t.fail(ctx, "send audio", err)
		}
	}
	if err := conn.WriteJSON(controlMessage{Type: "end"}); err != nil {
		return "", t.fail(ctx, "send end", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(t.replyTimeout)); err != nil {
		return "", fmt.Errorf("set read deadline: %w", err)
	}

	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return "", t.fail(ctx, "read transcript", err)
		}

		switch msg.Type {
		case "transcript":
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			text := strings.TrimSpace(msg.Text)
			if text == "" {
				return "", ErrNoSpeech
			}
			t.logger.Debug("transcribed", "text", text, "audio", p.Duration())
			return text, nil
		case "error":
			return "", fmt.Errorf("transcriber: %s", msg.Error)
		}
	}
}

// Close makes every later Transcribe fail with ErrTranscriberClosed.
func (t *WSTranscriber) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *WSTranscriber) url(sampleRate int) string {
	u := *t.endpoint
	q := u.Query()
	q.Set("sample_rate", strconv.Itoa(sampleRate))
	u.RawQuery = q.Encode()
	return u.String()
}

// fail reports ctx's error when the connection was closed by cancellation.
func (t *WSTranscriber) fail(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return fmt.Errorf("%s: transcriber closed connection (%d)", op, closeErr.Code)
	}
	return fmt.Errorf("%s: %w", op, err)
}
