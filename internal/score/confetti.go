package score

import (
	"image/color"
	"math/rand"
	"time"
)

// Particle is one confetti dot in canvas pixels.
type Particle struct {
	X, Y   int
	Radius int
	Color  color.RGBA
}

// Confetti returns n particles scattered over a w x h canvas. Particle i
// is drawn from a generator seeded with i + elapsed in centiseconds, so
// the pattern is stable within a centisecond and reproducible.
func Confetti(elapsed time.Duration, w, h, n int) []Particle {
	if n <= 0 || w <= 0 || h <= 0 {
		return nil
	}

	base := int64(elapsed / (10 * time.Millisecond))
	out := make([]Particle, n)
	for i := range out {
		rng := rand.New(rand.NewSource(int64(i) + base))
		out[i] = Particle{
			X:      int(rng.Float64() * float64(w)),
			Y:      int(rng.Float64() * float64(h)),
			Radius: 3 + int(rng.Float64()*8),
			Color: color.RGBA{
				R: uint8(rng.Float64() * 255),
				G: uint8(rng.Float64() * 255),
				B: uint8(rng.Float64() * 255),
				A: 255,
			},
		}
	}
	return out
}

var (
	progressLow  = color.RGBA{R: 255, A: 255}
	progressMid  = color.RGBA{R: 255, G: 215, A: 255}
	progressHigh = color.RGBA{G: 255, A: 255}
)

// ProgressColor returns the goal bar fill colour: red below half, amber
// below 90% and green from there.
func ProgressColor(progress float64) color.RGBA {
	switch {
	case progress < 0.5:
		return progressLow
	case progress < 0.9:
		return progressMid
	default:
		return progressHigh
	}
}
