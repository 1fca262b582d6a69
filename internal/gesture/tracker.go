package gesture

import (
	"time"

	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/history"
)

// Tracker owns the per-side histories and the state of every gesture
// machine. It is driven once per video frame from a single goroutine.
type Tracker struct {
	leftY  *history.Buffer
	rightY *history.Buffer
	leftX  *history.Buffer
	rightX *history.Buffer

	crossing Crossing
	lateral  Lateral

	states map[Kind]State
}

// NewTracker creates a Tracker from a validated Config.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		leftY:    history.New(cfg.HistoryLength),
		rightY:   history.New(cfg.HistoryLength),
		leftX:    history.New(cfg.HistoryLength),
		rightX:   history.New(cfg.HistoryLength),
		crossing: Crossing{Threshold: cfg.CrossingThreshold, Cooldown: cfg.CrossingCooldown},
		lateral:  Lateral{Magnitude: cfg.LateralMagnitude, Cooldown: cfg.LateralCooldown},
		states: map[Kind]State{
			KindCrossing: {},
			KindLateral:  {},
		},
	}
}

// Update records the frame's hands and steps every machine.
// It returns the events triggered this frame, if any.
func (t *Tracker) Update(f detector.Frame, now time.Time) []Event {
	sig := t.observe(&f, now)

	var events []Event

	s, ev := t.crossing.Step(t.states[KindCrossing], sig)
	t.states[KindCrossing] = s
	if ev != nil {
		events = append(events, *ev)
	}

	s, ev = t.lateral.Step(t.states[KindLateral], sig)
	t.states[KindLateral] = s
	if ev != nil {
		events = append(events, *ev)
	}

	return events
}

// observe pushes this frame's samples and derives the machine inputs.
// A side without a hand this frame skips its pushes, and the machines
// only see displacements on frames with both hands.
func (t *Tracker) observe(f *detector.Frame, now time.Time) Signals {
	left, right := f.Left(), f.Right()

	if left != nil {
		t.leftY.Push(left.CenterY())
		t.leftX.Push(left.Points[detector.Wrist].X)
	}
	if right != nil {
		t.rightY.Push(right.CenterY())
		t.rightX.Push(right.Points[detector.Wrist].X)
	}

	sig := Signals{
		Now:         now,
		LeftPalmUp:  left != nil && left.PalmUp(),
		RightPalmUp: right != nil && right.PalmUp(),
	}

	if left == nil || right == nil {
		return sig
	}

	ldy, lok := t.leftY.Displacement()
	rdy, rok := t.rightY.Displacement()
	if lok && rok {
		sig.VerticalReady = true
		sig.LeftDY, sig.RightDY = ldy, rdy
	}

	ldx, lok := t.leftX.Displacement()
	rdx, rok := t.rightX.Displacement()
	if lok && rok {
		sig.HorizontalReady = true
		sig.LeftDX, sig.RightDX = ldx, rdx
	}

	return sig
}

// State returns the current state of a gesture machine.
func (t *Tracker) State(kind Kind) State {
	return t.states[kind]
}

// Count returns the trigger count of a gesture.
func (t *Tracker) Count(kind Kind) int {
	return t.states[kind].Count
}

// ResetCount zeroes one gesture's counter. Phase and cooldown clock are kept.
func (t *Tracker) ResetCount(kind Kind) {
	s := t.states[kind]
	s.Count = 0
	t.states[kind] = s
}

// Counter returns a view of one gesture's counter.
func (t *Tracker) Counter(kind Kind) *Counter {
	return &Counter{tracker: t, kind: kind}
}

// Counter exposes a single gesture count for score aggregation.
type Counter struct {
	tracker *Tracker
	kind    Kind
}

// Count returns the current count.
func (c *Counter) Count() int {
	return c.tracker.Count(c.kind)
}

// Reset zeroes the count.
func (c *Counter) Reset() {
	c.tracker.ResetCount(c.kind)
}
