package score

import (
	"time"
)

// Status is the aggregated score as of one Update.
type Status struct {
	Gesture  int
	Voice    int
	Combined int
	Total    int
	Goal     int

	// Progress is Total/Goal capped at 1.
	Progress float64

	Unlocked   bool
	UnlockedAt time.Time
	// Elapsed is the time since unlock while the overlay is up.
	Elapsed time.Duration

	// JustUnlocked is set on the frame the goal was first reached.
	JustUnlocked bool
	// JustReset is set on the frame the overlay expired and the
	// counters were cleared.
	JustReset bool
}

// Reward tracks the accumulate/unlock cycle. It is updated once per
// frame from the frame loop; the counters it reads may be incremented
// concurrently by their own sources.
type Reward struct {
	cfg      Config
	counters Counters

	unlocked   bool
	unlockedAt time.Time
}

// NewReward creates a Reward over the given counters.
func NewReward(cfg Config, counters Counters) *Reward {
	return &Reward{cfg: cfg, counters: counters}
}

// Update sums the counters, unlocks the reward the first frame the goal
// is reached, and clears everything once the overlay has been up for
// longer than the configured duration.
func (r *Reward) Update(now time.Time) Status {
	st := r.read()

	if !r.unlocked && st.Total >= r.cfg.Goal {
		r.unlocked = true
		r.unlockedAt = now
		st.JustUnlocked = true
	}

	if r.unlocked {
		elapsed := now.Sub(r.unlockedAt)
		if elapsed > r.cfg.Duration {
			r.counters.each(Counter.Reset)
			r.unlocked = false
			r.unlockedAt = time.Time{}

			st = r.read()
			st.JustReset = true
			return st
		}
		st.Unlocked = true
		st.UnlockedAt = r.unlockedAt
		st.Elapsed = elapsed
	}

	return st
}

// Unlocked reports whether the reward overlay is active.
func (r *Reward) Unlocked() bool {
	return r.unlocked
}

// Goal returns the configured goal.
func (r *Reward) Goal() int {
	return r.cfg.Goal
}

func (r *Reward) read() Status {
	st := Status{
		Gesture:  count(r.counters.Gesture),
		Voice:    count(r.counters.Voice),
		Combined: count(r.counters.Combined),
		Goal:     r.cfg.Goal,
	}
	st.Total = st.Gesture + st.Voice + st.Combined
	st.Progress = Progress(st.Total, r.cfg.Goal)
	return st
}

// Progress returns total/goal clamped to [0, 1].
func Progress(total, goal int) float64 {
	if goal <= 0 {
		return 1
	}
	p := float64(total) / float64(goal)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
