package voice

import (
	"fmt"
	"time"
)

// Config holds microphone and transcription settings.
type Config struct {
	// TranscriberURL is the websocket speech-to-text endpoint.
	// Voice listening is disabled when it is empty.
	TranscriberURL string

	// Device is the ALSA capture device; empty uses the default.
	Device     string
	SampleRate int

	// Chunk is the energy gate's analysis window.
	Chunk time.Duration
	// Calibration is how long ambient noise is sampled.
	Calibration time.Duration
	// EnergyFactor scales the ambient level into the speech threshold.
	EnergyFactor float64
	// MinThreshold is the lowest speech threshold, in RMS sample units.
	MinThreshold float64
	// Pause is the trailing silence that ends a phrase.
	Pause time.Duration
	// MaxPhrase caps the length of one phrase.
	MaxPhrase time.Duration
	// ListenTimeout bounds the wait for speech to begin.
	ListenTimeout time.Duration

	HandshakeTimeout time.Duration
	ReplyTimeout     time.Duration
}

// DefaultConfig returns the default voice settings.
func DefaultConfig() Config {
	return Config{
		SampleRate:       16000,
		Chunk:            32 * time.Millisecond,
		Calibration:      time.Second,
		EnergyFactor:     1.5,
		MinThreshold:     300,
		Pause:            800 * time.Millisecond,
		MaxPhrase:        3 * time.Second,
		ListenTimeout:    10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ReplyTimeout:     10 * time.Second,
	}
}

// Enabled reports whether a transcriber endpoint is configured.
func (c Config) Enabled() bool {
	return c.TranscriberURL != ""
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.Chunk <= 0 {
		return fmt.Errorf("chunk must be positive, got %v", c.Chunk)
	}
	if c.Calibration < c.Chunk {
		return fmt.Errorf("calibration %v shorter than one chunk %v", c.Calibration, c.Chunk)
	}
	if c.EnergyFactor < 1 {
		return fmt.Errorf("energy factor must be at least 1, got %g", c.EnergyFactor)
	}
	if c.MinThreshold < 0 {
		return fmt.Errorf("min threshold must not be negative, got %g", c.MinThreshold)
	}
	if c.Pause <= 0 {
		return fmt.Errorf("pause must be positive, got %v", c.Pause)
	}
	if c.MaxPhrase <= 0 {
		return fmt.Errorf("max phrase must be positive, got %v", c.MaxPhrase)
	}
	if c.ListenTimeout <= 0 {
		return fmt.Errorf("listen timeout must be positive, got %v", c.ListenTimeout)
	}
	if c.HandshakeTimeout <= 0 || c.ReplyTimeout <= 0 {
		return fmt.Errorf("transcriber timeouts must be positive")
	}
	return nil
}

// chunkBytes is the size in bytes of one analysis window.
func (c Config) chunkBytes() int {
	samples := int(int64(c.SampleRate) * int64(c.Chunk) / int64(time.Second))
	if samples < 1 {
		samples = 1
	}
	return samples * 2
}

// chunks returns how many analysis windows cover d, at least one.
func (c Config) chunks(d time.Duration) int {
	n := int(d / c.Chunk)
	if n < 1 {
		n = 1
	}
	return n
}
