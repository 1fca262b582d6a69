package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayusman/handpong/internal/log"
)

// DefaultMicRetry is the pause after a microphone failure.
const DefaultMicRetry = time.Second

var errMicrophone = errors.New("microphone failed")

// Listener runs the capture, transcribe and match loop.
type Listener struct {
	mic       Microphone
	tr        Transcriber
	counter   *Counter
	maxPhrase time.Duration
	micRetry  time.Duration
	logger    *slog.Logger
}

// NewListener creates a Listener that increments counter on every match.
func NewListener(mic Microphone, tr Transcriber, counter *Counter, maxPhrase time.Duration, logger *slog.Logger) *Listener {
	return &Listener{
		mic:       mic,
		tr:        tr,
		counter:   counter,
		maxPhrase: maxPhrase,
		micRetry:  DefaultMicRetry,
		logger:    log.Or(logger).With("component", "voice"),
	}
}

// SetMicRetry changes the pause after a microphone failure.
func (l *Listener) SetMicRetry(d time.Duration) {
	l.micRetry = d
}

// Run listens until ctx is cancelled. Each attempt recalibrates the
// microphone first. Failed attempts are logged at debug level and
// retried, at once for silence and transcription failures and after a
// short pause for microphone failures. Run only returns ctx's error.
func (l *Listener) Run(ctx context.Context) error {
	l.logger.Info("voice listener started")
	for {
		if err := ctx.Err(); err != nil {
			l.logger.Info("voice listener stopped")
			return err
		}

		err := l.listenOnce(ctx)
		if err == nil || ctx.Err() != nil {
			continue
		}
		l.logger.Debug("listen attempt failed", "error", err)

		if errors.Is(err, errMicrophone) && l.micRetry > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(l.micRetry):
			}
		}
	}
}

// Start runs the listener in the background. The returned channel is
// closed once it has stopped.
func (l *Listener) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Run(ctx)
	}()
	return done
}

func (l *Listener) listenOnce(ctx context.Context) error {
	if err := l.mic.Calibrate(ctx); err != nil {
		return fmt.Errorf("%w: %v", errMicrophone, err)
	}

	phrase, err := l.mic.Capture(ctx, l.maxPhrase)
	if errors.Is(err, ErrNoSpeech) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errMicrophone, err)
	}

	text, err := l.tr.Transcribe(ctx, phrase)
	if err != nil {
		return err
	}

	if !MatchPhrase(text) {
		l.logger.Debug("phrase ignored", "text", text)
		return nil
	}

	n := l.counter.Inc()
	l.logger.Info("trigger phrase heard", "text", text, "count", n)
	return nil
}
