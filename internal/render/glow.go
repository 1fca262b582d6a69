package render

import (
	"image"
	"image/color"
)

const (
	// glowSize is the widest halo in pixels.
	glowSize = 12
	glowStep = 3
)

// glowShade darkens c for the halo ring i pixels out.
func glowShade(c color.RGBA, i int) color.RGBA {
	sub := func(v uint8, d int) uint8 {
		if int(v) < d {
			return 0
		}
		return uint8(int(v) - d)
	}
	return color.RGBA{R: sub(c.R, 2*i), G: sub(c.G, i), B: sub(c.B, i), A: c.A}
}

// GlowRect fills r with c on top of progressively darker, larger halos.
func GlowRect(s Sink, r image.Rectangle, c color.RGBA) {
	for i := glowSize; i > 0; i -= glowStep {
		halo := image.Rect(r.Min.X-i/2, r.Min.Y-i/2, r.Max.X+i-i/2, r.Max.Y+i-i/2)
		s.FillRect(halo, glowShade(c, i))
	}
	s.FillRect(r, c)
}

// GlowCircle fills a circle with c on top of progressively darker halos.
func GlowCircle(s Sink, center image.Point, radius int, c color.RGBA) {
	for i := glowSize; i > 0; i -= glowStep {
		s.FillCircle(center, radius+i, glowShade(c, i))
	}
	s.FillCircle(center, radius, c)
}
