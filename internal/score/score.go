// Package score sums the gesture and voice counters toward a goal and
// drives the timed reward overlay that resets them.
package score

import (
	"fmt"
	"time"
)

// Counter is a resettable event count owned by some event source.
type Counter interface {
	Count() int
	Reset()
}

// Counters are the three sources that contribute to the total.
type Counters struct {
	// Gesture counts the vertical hand-crossing gesture.
	Gesture Counter
	// Voice counts recognised spoken phrases.
	Voice Counter
	// Combined counts the palms-up lateral gesture.
	Combined Counter
}

func (c Counters) each(fn func(Counter)) {
	for _, counter := range []Counter{c.Gesture, c.Voice, c.Combined} {
		if counter != nil {
			fn(counter)
		}
	}
}

func count(c Counter) int {
	if c == nil {
		return 0
	}
	return c.Count()
}

// Config holds reward settings.
type Config struct {
	// Goal is the total needed to unlock the reward.
	Goal int
	// Duration is how long the reward overlay stays up.
	Duration time.Duration
	// Confetti is the number of particles drawn per overlay frame.
	Confetti int
}

// DefaultConfig returns the default reward settings.
func DefaultConfig() Config {
	return Config{
		Goal:     10,
		Duration: 8 * time.Second,
		Confetti: 80,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Goal < 1 {
		return fmt.Errorf("goal must be at least 1, got %d", c.Goal)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("reward duration must be positive, got %v", c.Duration)
	}
	if c.Confetti < 0 {
		return fmt.Errorf("confetti count must not be negative, got %d", c.Confetti)
	}
	return nil
}
