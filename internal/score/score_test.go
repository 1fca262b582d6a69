package score

import (
	"image/color"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeCounter struct{ n int }

func (f *fakeCounter) Count() int { return f.n }
func (f *fakeCounter) Reset()     { f.n = 0 }

func newFixture(g, v, c int) (*Reward, *fakeCounter, *fakeCounter, *fakeCounter) {
	gc, vc, cc := &fakeCounter{g}, &fakeCounter{v}, &fakeCounter{c}
	r := NewReward(DefaultConfig(), Counters{Gesture: gc, Voice: vc, Combined: cc})
	return r, gc, vc, cc
}

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestReward_Accumulating(t *testing.T) {
	r, _, _, _ := newFixture(3, 2, 1)

	st := r.Update(start)
	want := Status{Gesture: 3, Voice: 2, Combined: 1, Total: 6, Goal: 10, Progress: 0.6}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("Update() mismatch (-want +got):\n%s", diff)
	}
	if r.Unlocked() {
		t.Error("reward should still be locked")
	}
}

func TestReward_UnlockAndReset(t *testing.T) {
	r, gc, vc, cc := newFixture(7, 0, 0)

	if st := r.Update(start); st.Unlocked {
		t.Fatal("unlocked below the goal")
	}

	// Three voice events arrive between frames.
	vc.n = 3
	unlockAt := start.Add(time.Second)
	st := r.Update(unlockAt)
	if !st.Unlocked || !st.JustUnlocked {
		t.Fatalf("status = %+v, want just unlocked", st)
	}
	if st.Total != 10 || st.Progress != 1 || !st.UnlockedAt.Equal(unlockAt) {
		t.Errorf("status = %+v", st)
	}

	st = r.Update(unlockAt.Add(4 * time.Second))
	if !st.Unlocked || st.JustUnlocked || st.Elapsed != 4*time.Second {
		t.Errorf("mid overlay status = %+v", st)
	}

	// Exactly the duration is still inside the overlay.
	st = r.Update(unlockAt.Add(8 * time.Second))
	if !st.Unlocked || st.JustReset {
		t.Fatalf("at exactly 8s status = %+v, want still unlocked", st)
	}
	if gc.n != 7 || vc.n != 3 {
		t.Fatal("counters cleared too early")
	}

	st = r.Update(unlockAt.Add(8*time.Second + 33*time.Millisecond))
	if st.Unlocked || !st.JustReset {
		t.Fatalf("after expiry status = %+v, want reset", st)
	}
	if st.Total != 0 || gc.n != 0 || vc.n != 0 || cc.n != 0 {
		t.Errorf("counters not cleared: status=%+v g=%d v=%d c=%d", st, gc.n, vc.n, cc.n)
	}
	if r.Unlocked() {
		t.Error("reward should be locked after reset")
	}
}

func TestReward_CountsDuringOverlayDoNotRetrigger(t *testing.T) {
	r, gc, _, _ := newFixture(10, 0, 0)

	first := r.Update(start)
	if !first.JustUnlocked {
		t.Fatal("expected unlock")
	}

	gc.n = 15
	st := r.Update(start.Add(2 * time.Second))
	if st.JustUnlocked || !st.UnlockedAt.Equal(start) {
		t.Errorf("status = %+v, want the original unlock kept", st)
	}
	if st.Total != 15 || st.Progress != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestReward_NilCounters(t *testing.T) {
	vc := &fakeCounter{4}
	r := NewReward(DefaultConfig(), Counters{Voice: vc})
	if st := r.Update(start); st.Total != 4 {
		t.Errorf("Total = %d, want 4", st.Total)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		total, goal int
		want        float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{10, 10, 1},
		{25, 10, 1},
		{-1, 10, 0},
		{3, 0, 1},
	}
	for _, tt := range tests {
		if got := Progress(tt.total, tt.goal); got != tt.want {
			t.Errorf("Progress(%d, %d) = %v, want %v", tt.total, tt.goal, got, tt.want)
		}
	}
}

func TestProgressColor(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "low"},
		{0.49, "low"},
		{0.5, "mid"},
		{0.89, "mid"},
		{0.9, "high"},
		{1, "high"},
	}
	bands := map[string]color.RGBA{"low": progressLow, "mid": progressMid, "high": progressHigh}
	for _, tt := range tests {
		if got := ProgressColor(tt.progress); got != bands[tt.want] {
			t.Errorf("ProgressColor(%v) = %v, want %s band", tt.progress, got, tt.want)
		}
	}
}

func TestConfetti(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := Confetti(1234*time.Millisecond, 640, 480, 80)
		b := Confetti(1234*time.Millisecond, 640, 480, 80)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("same elapsed produced different confetti:\n%s", diff)
		}
		if len(a) != 80 {
			t.Errorf("len = %d, want 80", len(a))
		}
	})

	t.Run("stable within a centisecond", func(t *testing.T) {
		a := Confetti(1230*time.Millisecond, 640, 480, 10)
		b := Confetti(1238*time.Millisecond, 640, 480, 10)
		if !cmp.Equal(a, b) {
			t.Error("confetti changed within one centisecond")
		}
	})

	t.Run("moves between frames", func(t *testing.T) {
		a := Confetti(time.Second, 640, 480, 10)
		b := Confetti(time.Second+33*time.Millisecond, 640, 480, 10)
		if cmp.Equal(a, b) {
			t.Error("confetti did not change across frames")
		}
	})

	t.Run("within bounds", func(t *testing.T) {
		for _, p := range Confetti(5*time.Second, 300, 200, 200) {
			if p.X < 0 || p.X >= 300 || p.Y < 0 || p.Y >= 200 {
				t.Fatalf("particle out of bounds: %+v", p)
			}
			if p.Radius < 3 || p.Radius > 10 {
				t.Fatalf("radius out of range: %+v", p)
			}
			if p.Color.A != 255 {
				t.Fatalf("particle not opaque: %+v", p)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		if Confetti(time.Second, 0, 100, 10) != nil || Confetti(time.Second, 100, 100, 0) != nil {
			t.Error("expected nil for empty canvas or zero count")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero goal", func(c *Config) { c.Goal = 0 }, true},
		{"zero duration", func(c *Config) { c.Duration = 0 }, true},
		{"negative confetti", func(c *Config) { c.Confetti = -1 }, true},
		{"no confetti", func(c *Config) { c.Confetti = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
