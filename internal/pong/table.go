package pong

import (
	"fmt"
	"math"
	"math/rand"
)

// Side names a player by the edge they defend.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side name.
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	case "none", "":
		*s = SideNone
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}

// Ball is the ball's centre and velocity in pixels per tick.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Result reports what happened during one tick.
type Result struct {
	// Hit is set when the ball touched a paddle.
	Hit bool
	// HitBy is the paddle that was touched.
	HitBy Side
	// Scorer is the side that won a point this tick, if any.
	Scorer Side
}

// Table is the full game state: both paddles, the ball and the match score.
type Table struct {
	cfg Config

	Left  Paddle
	Right Paddle
	Ball  Ball

	ScoreLeft  int
	ScoreRight int
}

// NewTable creates a table with centred paddles and the ball served
// toward the right.
func NewTable(cfg Config) *Table {
	pw, ph := float64(cfg.PaddleWidth), float64(cfg.PaddleHeight)
	w, h := float64(cfg.Width), float64(cfg.Height)
	mid := (h - ph) / 2

	t := &Table{
		cfg: cfg,
		Left: Paddle{
			X: float64(cfg.PaddleMargin), Y: mid, Target: mid,
			Width: pw, Height: ph, maxY: h - ph,
		},
		Right: Paddle{
			X: w - float64(cfg.PaddleMargin) - pw, Y: mid, Target: mid,
			Width: pw, Height: ph, maxY: h - ph,
		},
		Ball: Ball{Radius: float64(cfg.BallRadius)},
	}
	t.serve(1, 1)
	return t
}

// Config returns the table configuration.
func (t *Table) Config() Config {
	return t.cfg
}

// serve puts the ball at the exact centre moving at base speed in the
// horizontal direction dirX, with the canonical vertical speed in dirY.
func (t *Table) serve(dirX, dirY float64) {
	base := t.cfg.BaseSpeed
	t.Ball.X = float64(t.cfg.Width) / 2
	t.Ball.Y = float64(t.cfg.Height) / 2
	t.Ball.VX = math.Copysign(base, dirX)
	t.Ball.VY = math.Copysign(base*0.6, dirY)
}

// Step advances the ball one tick: move, bounce off the top and bottom
// walls, collide with paddles, then score.
func (t *Table) Step() Result {
	var res Result
	b := &t.Ball

	b.X += b.VX
	b.Y += b.VY

	if b.Y <= 0 || b.Y >= float64(t.cfg.Height) {
		b.VY = -b.VY
	}

	inc, deflect := t.cfg.HitIncrement, t.cfg.DeflectDivisor

	if b.X-b.Radius <= t.Left.X+t.Left.Width && t.Left.Contains(b.Y) {
		b.VX = math.Abs(b.VX) + inc
		b.VY += (b.Y - t.Left.Center()) / deflect
		res.Hit, res.HitBy = true, SideLeft
	}
	if b.X+b.Radius >= t.Right.X && t.Right.Contains(b.Y) {
		b.VX = -math.Abs(b.VX) - inc
		b.VY += (b.Y - t.Right.Center()) / deflect
		res.Hit, res.HitBy = true, SideRight
	}

	switch {
	case b.X < 0:
		t.ScoreRight++
		res.Scorer = SideRight
		t.serve(-1, b.VY)
	case b.X > float64(t.cfg.Width):
		t.ScoreLeft++
		res.Scorer = SideLeft
		t.serve(1, b.VY)
	}

	return res
}

// Shake returns a render offset for a hit frame, each axis drawn
// uniformly from [-intensity, intensity).
func Shake(rng *rand.Rand, intensity int) (dx, dy int) {
	if intensity <= 0 {
		return 0, 0
	}
	dx = rng.Intn(2*intensity) - intensity
	dy = rng.Intn(2*intensity) - intensity
	return dx, dy
}
