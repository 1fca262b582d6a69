package gesture

import (
	"math"
	"time"
)

// Crossing detects the vertical hand-swap gesture.
//
// Idle arms when the left hand moves up (negative DY beyond Threshold)
// while the right hand moves down. Armed fires on the reverse pattern if
// Cooldown has elapsed since the last trigger, then returns to Idle. When
// the cooldown suppresses the trigger the machine stays Armed.
//
// Armed has no timeout: if the reverse pattern never arrives the machine
// waits for it indefinitely.
type Crossing struct {
	Threshold float64
	Cooldown  time.Duration
}

// Step applies one frame of signals.
func (c Crossing) Step(s State, sig Signals) (State, *Event) {
	if !sig.VerticalReady {
		return s, nil
	}

	switch s.Phase {
	case Idle:
		if sig.LeftDY < -c.Threshold && sig.RightDY > c.Threshold {
			s.Phase = Armed
		}
	case Armed:
		if sig.LeftDY > c.Threshold && sig.RightDY < -c.Threshold {
			if cooledDown(s, sig.Now, c.Cooldown) {
				return trigger(KindCrossing, s, sig.Now)
			}
		}
	}
	return s, nil
}

// Lateral detects the palms-up spreading gesture.
//
// Idle arms when the left hand moves left, the right hand moves right and
// both palms face up. Armed waits until both horizontal displacements
// exceed Magnitude; it then returns to Idle whether or not the cooldown
// allowed the count to increase.
type Lateral struct {
	Magnitude float64
	Cooldown  time.Duration
}

// Step applies one frame of signals.
func (l Lateral) Step(s State, sig Signals) (State, *Event) {
	if !sig.HorizontalReady {
		return s, nil
	}

	switch s.Phase {
	case Idle:
		if sig.LeftDX < 0 && sig.RightDX > 0 && sig.LeftPalmUp && sig.RightPalmUp {
			s.Phase = Armed
		}
	case Armed:
		if math.Abs(sig.LeftDX) > l.Magnitude && math.Abs(sig.RightDX) > l.Magnitude {
			if cooledDown(s, sig.Now, l.Cooldown) {
				return trigger(KindLateral, s, sig.Now)
			}
			s.Phase = Idle
		}
	}
	return s, nil
}
