package pong

import (
	"github.com/ayusman/handpong/internal/detector"
)

// Paddle is one player's paddle. X is fixed; Y is the top edge and
// eases toward Target every tick.
type Paddle struct {
	X      float64
	Y      float64
	Target float64
	Width  float64
	Height float64

	// maxY is the lowest allowed top edge.
	maxY float64
}

// Center returns the paddle's vertical centre.
func (p *Paddle) Center() float64 {
	return p.Y + p.Height/2
}

// Contains reports whether y lies within the paddle's vertical span.
func (p *Paddle) Contains(y float64) bool {
	return p.Y <= y && y <= p.Y+p.Height
}

// Step moves the paddle one tick toward its target with exponential
// smoothing, then clamps it to the playfield.
func (p *Paddle) Step(smoothing float64) {
	p.Y = p.Y*smoothing + p.Target*(1-smoothing)
	p.Y = clamp(p.Y, 0, p.maxY)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Controller maps hands to paddle targets. Hands are ordered by the X of
// the middle-finger MCP: the leftmost drives the left paddle, the next
// drives the right one. A paddle with no hand this frame keeps its last
// target.
type Controller struct {
	left      *Paddle
	right     *Paddle
	height    float64
	smoothing float64
}

// NewController creates a Controller driving the given paddles.
func NewController(cfg Config, left, right *Paddle) *Controller {
	return &Controller{
		left:      left,
		right:     right,
		height:    float64(cfg.Height),
		smoothing: cfg.Smoothing,
	}
}

// Update retargets the paddles from the frame and steps both.
func (c *Controller) Update(f detector.Frame) {
	hands := f.ByX()
	paddles := []*Paddle{c.left, c.right}
	for i, h := range hands {
		if i >= len(paddles) {
			break
		}
		p := paddles[i]
		p.Target = h.Points[detector.MiddleMCP].Y*c.height - p.Height/2
	}

	c.left.Step(c.smoothing)
	c.right.Step(c.smoothing)
}
