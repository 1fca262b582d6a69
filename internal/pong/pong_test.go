package pong

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/ayusman/handpong/internal/detector"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestPaddle_ExponentialApproach(t *testing.T) {
	cfg := DefaultConfig()
	tbl := NewTable(cfg)
	p := &tbl.Left

	p.Y = 0
	p.Target = 400
	for n := 1; n <= 10; n++ {
		p.Step(cfg.Smoothing)
		want := 400 * (1 - math.Pow(cfg.Smoothing, float64(n)))
		if !approx(p.Y, want) {
			t.Fatalf("step %d: Y = %v, want %v", n, p.Y, want)
		}
	}
}

func TestPaddle_Clamp(t *testing.T) {
	cfg := DefaultConfig()
	tbl := NewTable(cfg)

	tbl.Left.Target = -500
	tbl.Right.Target = 5000
	for i := 0; i < 50; i++ {
		tbl.Left.Step(cfg.Smoothing)
		tbl.Right.Step(cfg.Smoothing)
		if tbl.Left.Y < 0 || tbl.Right.Y > float64(cfg.Height-cfg.PaddleHeight) {
			t.Fatalf("paddle left the playfield: left=%v right=%v", tbl.Left.Y, tbl.Right.Y)
		}
	}
	if tbl.Left.Y != 0 {
		t.Errorf("left Y = %v, want 0", tbl.Left.Y)
	}
	if tbl.Right.Y != float64(cfg.Height-cfg.PaddleHeight) {
		t.Errorf("right Y = %v, want %d", tbl.Right.Y, cfg.Height-cfg.PaddleHeight)
	}
}

func TestController_Update(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("leftmost hand drives left paddle", func(t *testing.T) {
		tbl := NewTable(cfg)
		c := NewController(cfg, &tbl.Left, &tbl.Right)

		// Listed right-first to check ordering is by X, not slice order.
		c.Update(detector.Frame{Hands: []detector.HandLandmarks{
			detector.HandAt(detector.HandLeft, 0.8, 0.5, true),
			detector.HandAt(detector.HandRight, 0.2, 0.5, true),
		}})

		leftY := tbl.Left.Target
		rightY := tbl.Right.Target
		wantL := detector.HandAt(detector.HandRight, 0.2, 0.5, true).Points[detector.MiddleMCP].Y*600 - 70
		wantR := detector.HandAt(detector.HandLeft, 0.8, 0.5, true).Points[detector.MiddleMCP].Y*600 - 70
		if !approx(leftY, wantL) || !approx(rightY, wantR) {
			t.Errorf("targets = (%v, %v), want (%v, %v)", leftY, rightY, wantL, wantR)
		}
	})

	t.Run("missing hand keeps stale target", func(t *testing.T) {
		tbl := NewTable(cfg)
		c := NewController(cfg, &tbl.Left, &tbl.Right)

		c.Update(detector.Frame{Hands: []detector.HandLandmarks{
			detector.HandAt(detector.HandLeft, 0.2, 0.1, true),
			detector.HandAt(detector.HandRight, 0.8, 0.9, true),
		}})
		staleRight := tbl.Right.Target

		c.Update(detector.Frame{Hands: []detector.HandLandmarks{
			detector.HandAt(detector.HandLeft, 0.7, 0.4, true),
		}})
		if tbl.Right.Target != staleRight {
			t.Errorf("right target = %v, want stale %v", tbl.Right.Target, staleRight)
		}

		before := tbl.Left.Target
		c.Update(detector.Frame{})
		if tbl.Left.Target != before {
			t.Error("empty frame changed the left target")
		}
	})

	t.Run("paddles keep easing without hands", func(t *testing.T) {
		tbl := NewTable(cfg)
		c := NewController(cfg, &tbl.Left, &tbl.Right)
		tbl.Left.Target = 0

		start := tbl.Left.Y
		c.Update(detector.Frame{})
		if !approx(tbl.Left.Y, start*cfg.Smoothing) {
			t.Errorf("Y = %v, want %v", tbl.Left.Y, start*cfg.Smoothing)
		}
	})
}

// parkPaddles moves both paddles to the bottom so the ball passes freely.
func parkPaddles(tbl *Table) {
	bottom := float64(tbl.cfg.Height - tbl.cfg.PaddleHeight)
	tbl.Left.Y, tbl.Left.Target = bottom, bottom
	tbl.Right.Y, tbl.Right.Target = bottom, bottom
}

func TestTable_WallBounce(t *testing.T) {
	tests := []struct {
		name   string
		y, vy  float64
		wantVY float64
	}{
		{"bottom wall", 590, 11, -11},
		{"top wall", 5, -8, 8},
		{"open field", 300, 5, 5},
		{"exactly on bottom", 595, 5, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(DefaultConfig())
			parkPaddles(tbl)
			tbl.Ball = Ball{X: 450, Y: tt.y, VX: 1, VY: tt.vy, Radius: 10}

			tbl.Step()
			if tbl.Ball.VY != tt.wantVY {
				t.Errorf("VY = %v, want %v", tbl.Ball.VY, tt.wantVY)
			}
		})
	}
}

func TestTable_BallBelowFloorIsNotClamped(t *testing.T) {
	tbl := NewTable(DefaultConfig())
	parkPaddles(tbl)
	tbl.Ball = Ball{X: 450, Y: 590, VX: 0, VY: 11, Radius: 10}

	tbl.Step()
	if tbl.Ball.Y != 601 {
		t.Fatalf("Y = %v, want 601", tbl.Ball.Y)
	}
	if tbl.Ball.VY != -11 {
		t.Errorf("VY = %v, want -11", tbl.Ball.VY)
	}
}

func TestTable_ServeReachesFloor(t *testing.T) {
	tbl := NewTable(DefaultConfig())
	parkPaddles(tbl)
	tbl.Ball.Y = 586

	if tbl.Ball.VX != 25 || tbl.Ball.VY != 15 {
		t.Fatalf("serve velocity = (%v, %v), want (25, 15)", tbl.Ball.VX, tbl.Ball.VY)
	}
	tbl.Step()
	if tbl.Ball.Y != 601 || tbl.Ball.VY != -15 {
		t.Errorf("after tick y=%v vy=%v, want y=601 vy=-15", tbl.Ball.Y, tbl.Ball.VY)
	}
}

func TestTable_PaddleHits(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("left paddle", func(t *testing.T) {
		tbl := NewTable(cfg)
		tbl.Left.Y = 200 // centre 270
		tbl.Ball = Ball{X: 80, Y: 280, VX: -20, VY: 0, Radius: 10}

		res := tbl.Step()
		if !res.Hit || res.HitBy != SideLeft {
			t.Fatalf("result = %+v, want left hit", res)
		}
		if !approx(tbl.Ball.VX, 20.6) {
			t.Errorf("VX = %v, want 20.6", tbl.Ball.VX)
		}
		if !approx(tbl.Ball.VY, 10.0/15) {
			t.Errorf("VY = %v, want %v", tbl.Ball.VY, 10.0/15)
		}
	})

	t.Run("right paddle", func(t *testing.T) {
		tbl := NewTable(cfg)
		tbl.Right.Y = 300 // centre 370, face at 840
		tbl.Ball = Ball{X: 815, Y: 340, VX: 20, VY: 0, Radius: 10}

		res := tbl.Step()
		if !res.Hit || res.HitBy != SideRight {
			t.Fatalf("result = %+v, want right hit", res)
		}
		if !approx(tbl.Ball.VX, -20.6) {
			t.Errorf("VX = %v, want -20.6", tbl.Ball.VX)
		}
		if !approx(tbl.Ball.VY, -30.0/15) {
			t.Errorf("VY = %v, want -2", tbl.Ball.VY)
		}
	})

	t.Run("speed grows on every hit", func(t *testing.T) {
		tbl := NewTable(cfg)
		tbl.Left.Y = 200
		speed := 25.0
		for i := 0; i < 5; i++ {
			tbl.Ball = Ball{X: 60 + speed, Y: 270, VX: -speed, VY: 0, Radius: 10}
			tbl.Step()
			if !approx(tbl.Ball.VX, speed+0.6) {
				t.Fatalf("hit %d: VX = %v, want %v", i, tbl.Ball.VX, speed+0.6)
			}
			speed = tbl.Ball.VX
		}
	})

	t.Run("miss outside span", func(t *testing.T) {
		tbl := NewTable(cfg)
		tbl.Left.Y = 0
		tbl.Ball = Ball{X: 80, Y: 400, VX: -20, VY: 0, Radius: 10}
		if res := tbl.Step(); res.Hit {
			t.Error("ball below the paddle should not hit")
		}
	})
}

func TestTable_Scoring(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("right scores, serve toward left", func(t *testing.T) {
		tbl := NewTable(cfg)
		parkPaddles(tbl)
		tbl.Ball = Ball{X: 5, Y: 100, VX: -30, VY: -7, Radius: 10}

		res := tbl.Step()
		if res.Scorer != SideRight || tbl.ScoreRight != 1 || tbl.ScoreLeft != 0 {
			t.Fatalf("result = %+v, score %d-%d", res, tbl.ScoreLeft, tbl.ScoreRight)
		}
		want := Ball{X: 450, Y: 300, VX: -25, VY: -15, Radius: 10}
		if tbl.Ball != want {
			t.Errorf("ball = %+v, want %+v", tbl.Ball, want)
		}
	})

	t.Run("left scores, serve toward right", func(t *testing.T) {
		tbl := NewTable(cfg)
		parkPaddles(tbl)
		tbl.Ball = Ball{X: 895, Y: 100, VX: 31.2, VY: 3, Radius: 10}

		res := tbl.Step()
		if res.Scorer != SideLeft || tbl.ScoreLeft != 1 {
			t.Fatalf("result = %+v, score %d-%d", res, tbl.ScoreLeft, tbl.ScoreRight)
		}
		want := Ball{X: 450, Y: 300, VX: 25, VY: 15, Radius: 10}
		if tbl.Ball != want {
			t.Errorf("ball = %+v, want %+v", tbl.Ball, want)
		}
	})

	t.Run("no score in field", func(t *testing.T) {
		tbl := NewTable(cfg)
		parkPaddles(tbl)
		tbl.Ball = Ball{X: 450, Y: 100, VX: 25, VY: 0, Radius: 10}
		if res := tbl.Step(); res.Scorer != SideNone {
			t.Errorf("Scorer = %v, want none", res.Scorer)
		}
	})
}

func TestNewTable(t *testing.T) {
	cfg := DefaultConfig()
	tbl := NewTable(cfg)

	if tbl.Left.X != 40 || tbl.Right.X != 840 {
		t.Errorf("paddle X = %v/%v, want 40/840", tbl.Left.X, tbl.Right.X)
	}
	if tbl.Left.Y != 230 || tbl.Right.Y != 230 {
		t.Errorf("paddle Y = %v/%v, want centred at 230", tbl.Left.Y, tbl.Right.Y)
	}
	want := Ball{X: 450, Y: 300, VX: 25, VY: 15, Radius: 10}
	if tbl.Ball != want {
		t.Errorf("ball = %+v, want %+v", tbl.Ball, want)
	}
}

func TestShake(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		dx, dy := Shake(rng, 20)
		if dx < -20 || dx >= 20 || dy < -20 || dy >= 20 {
			t.Fatalf("offset (%d, %d) out of [-20, 20)", dx, dy)
		}
	}

	if dx, dy := Shake(rng, 0); dx != 0 || dy != 0 {
		t.Error("zero intensity should not shake")
	}

	a, b := rand.New(rand.NewSource(7)), rand.New(rand.NewSource(7))
	ax, ay := Shake(a, 20)
	bx, by := Shake(b, 20)
	if ax != bx || ay != by {
		t.Error("same seed should give the same offset")
	}
}

func TestSide_String(t *testing.T) {
	if SideLeft.String() != "left" || SideRight.String() != "right" || SideNone.String() != "none" {
		t.Error("unexpected side names")
	}

	b, err := json.Marshal(map[string]Side{"hit": SideRight})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"hit":"right"}` {
		t.Errorf("Marshal() = %s, want {\"hit\":\"right\"}", b)
	}

	var back map[string]Side
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back["hit"] != SideRight {
		t.Errorf("Unmarshal() = %v, want right", back["hit"])
	}

	var bad Side
	if err := bad.UnmarshalText([]byte("top")); err == nil {
		t.Error("UnmarshalText() should reject unknown sides")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"paddle taller than field", func(c *Config) { c.PaddleHeight = 700 }, true},
		{"margins overlap", func(c *Config) { c.PaddleMargin = 440 }, true},
		{"zero radius", func(c *Config) { c.BallRadius = 0 }, true},
		{"zero speed", func(c *Config) { c.BaseSpeed = 0 }, true},
		{"negative increment", func(c *Config) { c.HitIncrement = -1 }, true},
		{"zero deflect", func(c *Config) { c.DeflectDivisor = 0 }, true},
		{"smoothing one", func(c *Config) { c.Smoothing = 1 }, true},
		{"smoothing zero", func(c *Config) { c.Smoothing = 0 }, false},
		{"negative shake", func(c *Config) { c.ShakeIntensity = -1 }, true},
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
