// Package pong implements the two-paddle table: hand-driven paddle
// control, ball physics with scoring, and the screen-shake effect.
package pong

import (
	"errors"
	"fmt"
)

// Config holds playfield geometry and physics tunables. Distances are in
// canvas pixels and speeds in pixels per tick.
type Config struct {
	Width  int
	Height int

	PaddleWidth  int
	PaddleHeight int
	// PaddleMargin is the gap between each paddle and its edge.
	PaddleMargin int

	BallRadius int
	// BaseSpeed is the horizontal serve speed. The serve's vertical
	// speed is 0.6 of it.
	BaseSpeed float64
	// HitIncrement is added to the horizontal speed on every paddle hit.
	HitIncrement float64
	// DeflectDivisor scales how far from the paddle centre a hit lands
	// into extra vertical speed.
	DeflectDivisor float64

	// Smoothing is the weight kept from the previous paddle position
	// each tick, in [0, 1).
	Smoothing float64

	// ShakeIntensity bounds the render offset applied on hit frames.
	ShakeIntensity int
}

// DefaultConfig returns the default playfield.
func DefaultConfig() Config {
	return Config{
		Width:          900,
		Height:         600,
		PaddleWidth:    20,
		PaddleHeight:   140,
		PaddleMargin:   40,
		BallRadius:     10,
		BaseSpeed:      25,
		HitIncrement:   0.6,
		DeflectDivisor: 15,
		Smoothing:      0.65,
		ShakeIntensity: 20,
	}
}

// Validate checks that the configuration describes a playable table.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("playfield must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.PaddleWidth <= 0 || c.PaddleHeight <= 0 {
		return fmt.Errorf("paddle must be positive, got %dx%d", c.PaddleWidth, c.PaddleHeight)
	}
	if c.PaddleHeight > c.Height {
		return fmt.Errorf("paddle height %d exceeds playfield height %d", c.PaddleHeight, c.Height)
	}
	if c.PaddleMargin < 0 || 2*(c.PaddleMargin+c.PaddleWidth) >= c.Width {
		return fmt.Errorf("paddle margin %d does not fit playfield width %d", c.PaddleMargin, c.Width)
	}
	if c.BallRadius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %d", c.BallRadius)
	}
	if c.BaseSpeed <= 0 {
		return fmt.Errorf("base speed must be positive, got %g", c.BaseSpeed)
	}
	if c.HitIncrement < 0 {
		return fmt.Errorf("hit increment must not be negative, got %g", c.HitIncrement)
	}
	if c.DeflectDivisor <= 0 {
		return errors.New("deflect divisor must be positive")
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		return fmt.Errorf("smoothing must be in [0, 1), got %g", c.Smoothing)
	}
	if c.ShakeIntensity < 0 {
		return fmt.Errorf("shake intensity must not be negative, got %d", c.ShakeIntensity)
	}
	return nil
}
