// Package gesture turns per-frame hand landmarks into debounced discrete
// gesture events. Each gesture is a small state machine with a pure
// transition function, fed by displacements over short rolling windows.
package gesture

import (
	"time"
)

// Kind identifies a gesture.
type Kind string

const (
	// KindCrossing is both hands swapping vertical position: one rises
	// while the other falls, then the reverse.
	KindCrossing Kind = "crossing"
	// KindLateral is both palms up with the hands spreading apart
	// horizontally, then snapping apart sharply.
	KindLateral Kind = "lateral"
)

// Phase is the state of a gesture machine.
type Phase int

const (
	// Idle waits for the opening half of the gesture.
	Idle Phase = iota
	// Armed waits for the closing half.
	Armed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	default:
		return "unknown"
	}
}

// State is the full state of one gesture machine.
type State struct {
	Phase       Phase
	LastTrigger time.Time
	Count       int
}

// Event is emitted when a gesture triggers.
type Event struct {
	Kind  Kind      `json:"kind"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

// Signals are the per-frame inputs to the gesture machines.
// Displacements are latest minus oldest over the history window in
// normalized image units; Y grows downward.
type Signals struct {
	Now time.Time

	// VerticalReady is set when both hands' Y histories are warm.
	VerticalReady bool
	LeftDY        float64
	RightDY       float64

	// HorizontalReady is set when both hands' X histories are warm.
	HorizontalReady bool
	LeftDX          float64
	RightDX         float64

	// Palm-up predicates for the hands visible in the current frame.
	// An absent hand is never palm up.
	LeftPalmUp  bool
	RightPalmUp bool
}

func cooledDown(s State, now time.Time, cooldown time.Duration) bool {
	return now.Sub(s.LastTrigger) > cooldown
}

func trigger(kind Kind, s State, now time.Time) (State, *Event) {
	s.Count++
	s.LastTrigger = now
	s.Phase = Idle
	return s, &Event{Kind: kind, Count: s.Count, At: now}
}
