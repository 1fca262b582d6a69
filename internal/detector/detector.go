package detector

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Detector defines the interface for landmark detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected landmarks.
	// A frame without hands is not an error; Frame.Hands is empty.
	Detect(frame *gocv.Mat) (Frame, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// Pose enables body pose landmarks alongside hands.
	Pose bool

	// Script overrides the MediaPipe service script location.
	Script string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MaxHands < 1 || c.MaxHands > 2 {
		return fmt.Errorf("max hands must be 1 or 2, got %d", c.MaxHands)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min detection confidence must be in [0,1], got %g", c.MinConfidence)
	}
	if c.MinTrackingConf < 0 || c.MinTrackingConf > 1 {
		return fmt.Errorf("min tracking confidence must be in [0,1], got %g", c.MinTrackingConf)
	}
	return nil
}
