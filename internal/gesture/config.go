package gesture

import (
	"fmt"
	"time"

	"github.com/ayusman/handpong/internal/history"
)

// Config holds the tunables for gesture detection.
type Config struct {
	// HistoryLength is the rolling window length in frames.
	HistoryLength int

	// CrossingThreshold is the minimum vertical displacement per hand.
	CrossingThreshold float64
	// CrossingCooldown is the minimum interval between crossing triggers.
	CrossingCooldown time.Duration

	// LateralMagnitude is the minimum horizontal displacement per hand
	// for the closing half of the lateral gesture.
	LateralMagnitude float64
	// LateralCooldown is the minimum interval between lateral triggers.
	LateralCooldown time.Duration
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		HistoryLength:     history.DefaultLength,
		CrossingThreshold: 0.02,
		CrossingCooldown:  300 * time.Millisecond,
		LateralMagnitude:  0.03,
		LateralCooldown:   400 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.HistoryLength < 2 {
		return fmt.Errorf("history length must be at least 2, got %d", c.HistoryLength)
	}
	if c.CrossingThreshold <= 0 {
		return fmt.Errorf("crossing threshold must be positive, got %g", c.CrossingThreshold)
	}
	if c.CrossingCooldown <= 0 {
		return fmt.Errorf("crossing cooldown must be positive, got %v", c.CrossingCooldown)
	}
	if c.LateralMagnitude <= 0 {
		return fmt.Errorf("lateral magnitude must be positive, got %g", c.LateralMagnitude)
	}
	if c.LateralCooldown <= 0 {
		return fmt.Errorf("lateral cooldown must be positive, got %v", c.LateralCooldown)
	}
	return nil
}
