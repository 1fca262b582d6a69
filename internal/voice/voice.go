// Package voice listens for a spoken trigger phrase in the background
// and counts every time it is heard.
//
// Audio comes from a Microphone, is cut into phrases by an energy gate,
// sent to a streaming speech-to-text service over a websocket, and the
// returned transcript is matched against the trigger phrase.
package voice

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSpeech is returned when nothing above the noise floor was
	// heard, or the transcript came back empty.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrTranscriberClosed is returned by a Transcriber after Close.
	ErrTranscriberClosed = errors.New("transcriber closed")
	// ErrMicrophoneClosed is returned by a Microphone after Close.
	ErrMicrophoneClosed = errors.New("microphone closed")
)

// Phrase is one captured utterance of signed 16-bit little-endian mono PCM.
type Phrase struct {
	PCM        []byte
	SampleRate int
}

// Duration returns the audio length of the phrase.
func (p Phrase) Duration() time.Duration {
	if p.SampleRate <= 0 {
		return 0
	}
	samples := len(p.PCM) / 2
	return time.Duration(samples) * time.Second / time.Duration(p.SampleRate)
}

// Microphone captures phrases from an audio input.
type Microphone interface {
	// Calibrate samples ambient noise and sets the speech threshold.
	Calibrate(ctx context.Context) error
	// Capture waits for speech and returns it once it ends, or once it
	// has run for maxPhrase.
	Capture(ctx context.Context, maxPhrase time.Duration) (Phrase, error)
	Close() error
}

// Transcriber turns a phrase into text.
type Transcriber interface {
	Transcribe(ctx context.Context, p Phrase) (string, error)
	Close() error
}
