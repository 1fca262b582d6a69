package voice

import (
	"context"
	"sync"
	"time"
)

type captureResult struct {
	phrase Phrase
	err    error
}

// MockMicrophone is a scripted Microphone for testing. Captures return
// queued results in order; once the queue is empty Capture blocks until
// its context is cancelled.
type MockMicrophone struct {
	mu           sync.Mutex
	queue        []captureResult
	calibrations int
	calibrateErr error
	closed       bool
}

// NewMockMicrophone creates an empty MockMicrophone.
func NewMockMicrophone() *MockMicrophone {
	return &MockMicrophone{}
}

// PushPhrase queues a phrase.
func (m *MockMicrophone) PushPhrase(p Phrase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, captureResult{phrase: p})
}

// PushError queues a capture failure.
func (m *MockMicrophone) PushError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, captureResult{err: err})
}

// SetCalibrateError makes every Calibrate fail with err.
func (m *MockMicrophone) SetCalibrateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calibrateErr = err
}

// Calibrate records the call.
func (m *MockMicrophone) Calibrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrMicrophoneClosed
	}
	m.calibrations++
	return m.calibrateErr
}

// Capture returns the next queued result.
func (m *MockMicrophone) Capture(ctx context.Context, maxPhrase time.Duration) (Phrase, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Phrase{}, ErrMicrophoneClosed
	}
	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		return r.phrase, r.err
	}
	m.mu.Unlock()

	<-ctx.Done()
	return Phrase{}, ctx.Err()
}

// Calibrations returns how many times Calibrate was called.
func (m *MockMicrophone) Calibrations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calibrations
}

// Pending returns the number of queued results.
func (m *MockMicrophone) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close marks the microphone closed.
func (m *MockMicrophone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// MockTranscriber returns queued transcripts in order, then ErrNoSpeech.
type MockTranscriber struct {
	mu     sync.Mutex
	texts  []string
	err    error
	calls  int
	closed bool
}

// NewMockTranscriber creates a MockTranscriber with the given transcripts.
func NewMockTranscriber(texts ...string) *MockTranscriber {
	return &MockTranscriber{texts: texts}
}

// SetError makes every Transcribe fail with err.
func (m *MockTranscriber) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Transcribe returns the next queued transcript.
func (m *MockTranscriber) Transcribe(ctx context.Context, p Phrase) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.closed {
		return "", ErrTranscriberClosed
	}
	if m.err != nil {
		return "", m.err
	}
	if len(m.texts) == 0 {
		return "", ErrNoSpeech
	}
	text := m.texts[0]
	m.texts = m.texts[1:]
	return text, nil
}

// Calls returns how many times Transcribe was called.
func (m *MockTranscriber) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close marks the transcriber closed.
func (m *MockTranscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
