package voice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/ayusman/handpong/internal/log"
)

// Recorder implements Microphone with an arecord subprocess streaming
// raw mono PCM16 on stdout. The process is started lazily and restarted
// after a read failure.
type Recorder struct {
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd
	stdout    io.ReadCloser
	threshold float64
	closed    bool
}

// NewRecorder creates a Recorder. Nothing is started until the first
// Calibrate or Capture.
func NewRecorder(cfg Config, logger *slog.Logger) *Recorder {
	return &Recorder{
		cfg:       cfg,
		logger:    log.Or(logger).With("component", "microphone"),
		threshold: cfg.MinThreshold,
	}
}

// Calibrate samples ambient noise and updates the speech threshold.
func (r *Recorder) Calibrate(ctx context.Context) error {
	stream, err := r.stream()
	if err != nil {
		return err
	}

	threshold, err := calibrate(ctx, stream, r.cfg)
	if err != nil {
		r.reset()
		return err
	}

	r.mu.Lock()
	r.threshold = threshold
	r.mu.Unlock()

	r.logger.Debug("calibrated", "threshold", threshold)
	return nil
}

// Capture waits for the next phrase.
func (r *Recorder) Capture(ctx context.Context, maxPhrase time.Duration) (Phrase, error) {
	stream, err := r.stream()
	if err != nil {
		return Phrase{}, err
	}

	r.mu.Lock()
	threshold := r.threshold
	r.mu.Unlock()

	p, err := capture(ctx, stream, r.cfg, threshold, maxPhrase)
	if err != nil && err != ErrNoSpeech && ctx.Err() == nil {
		r.reset()
	}
	return p, err
}

// Close stops the recording process.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return r.stopLocked()
}

func (r *Recorder) args() []string {
	args := []string{
		"-q",
		"-t", "raw",
		"-f", "S16_LE",
		"-c", "1",
		"-r", strconv.Itoa(r.cfg.SampleRate),
	}
	if r.cfg.Device != "" {
		args = append(args, "-D", r.cfg.Device)
	}
	return args
}

// stream returns the running process's output, starting it if needed.
func (r *Recorder) stream() (io.Reader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrMicrophoneClosed
	}
	if r.cmd != nil {
		return r.stdout, nil
	}

	cmd := exec.Command("arecord", r.args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start arecord: %w", err)
	}

	r.cmd = cmd
	r.stdout = stdout
	r.logger.Debug("recording started", "device", r.cfg.Device, "sample_rate", r.cfg.SampleRate)
	return stdout, nil
}

func (r *Recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.stopLocked(); err != nil {
		r.logger.Debug("recording stopped", "error", err)
	}
}

func (r *Recorder) stopLocked() error {
	if r.cmd == nil {
		return nil
	}

	if r.cmd.Process != nil {
		r.cmd.Process.Kill()
	}
	err := r.cmd.Wait()
	r.cmd = nil
	r.stdout = nil

	if err != nil && !isKilled(err) {
		return err
	}
	return nil
}

func isKilled(err error) bool {
	exitErr, ok := err.(*exec.ExitError)
	return ok && !exitErr.Exited()
}
