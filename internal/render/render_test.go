package render

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/pong"
	"github.com/ayusman/handpong/internal/score"
)

func count(ops []Op, kind string) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func contains(texts []string, want string) bool {
	for _, t := range texts {
		if t == want {
			return true
		}
	}
	return false
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		raw  int
		want Key
	}{
		{-1, KeyNone},
		{27, KeyEsc},
		{13, KeyEnter},
		{10, KeyEnter},
		{81, KeyLeft},
		{83, KeyRight},
		{82, KeyUp},
		{84, KeyDown},
		{'A', KeyLeft},
		{'q', Key('q')},
		{0x10000 | 27, KeyEsc},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.raw); got != tt.want {
			t.Errorf("NormalizeKey(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestGlow(t *testing.T) {
	c := color.RGBA{R: 10, G: 200, B: 5, A: 255}

	shade := glowShade(c, 6)
	if shade != (color.RGBA{R: 0, G: 194, B: 0, A: 255}) {
		t.Errorf("glowShade = %v", shade)
	}

	s := NewMockSink(100, 100)
	r := image.Rect(20, 20, 40, 80)
	GlowRect(s, r, c)

	ops := s.Ops()
	if len(ops) != 5 {
		t.Fatalf("GlowRect drew %d rects, want 4 halos and the body", len(ops))
	}
	for i := 0; i < 4; i++ {
		if !r.In(ops[i].Rect) {
			t.Errorf("halo %d %v does not enclose body %v", i, ops[i].Rect, r)
		}
	}
	if last := ops[4]; last.Rect != r || last.Color != c {
		t.Errorf("body op = %+v", last)
	}

	s2 := NewMockSink(100, 100)
	GlowCircle(s2, image.Pt(50, 50), 10, c)
	ops = s2.Ops()
	if len(ops) != 5 || ops[0].Radius != 22 || ops[4].Radius != 10 {
		t.Errorf("GlowCircle ops = %+v", ops)
	}
}

func TestWardrobe(t *testing.T) {
	t.Run("cycling wraps", func(t *testing.T) {
		w := LoadWardrobe(nil, "", image.Pt(40, 140), nil)
		if w.Ball().Name != "Neon Yellow" {
			t.Errorf("default ball = %s", w.Ball().Name)
		}
		w.CycleBall(-1)
		if w.Ball().Name != "Retro Orange" {
			t.Errorf("ball after -1 = %s", w.Ball().Name)
		}
		w.CycleBall(2)
		if w.BallIndex() != 1 {
			t.Errorf("BallIndex = %d, want 1", w.BallIndex())
		}
		w.CyclePaddle(3)
		if w.Paddle().Name != "Lava Platform" || w.PaddleIndex() != 1 {
			t.Errorf("paddle = %s", w.Paddle().Name)
		}
	})

	t.Run("failed loads fall back", func(t *testing.T) {
		var loaded []string
		load := func(path string, size image.Point, mirror bool) (Sprite, error) {
			if filepath.Base(path) == "lava_platform.png" {
				return nil, errors.New("missing")
			}
			loaded = append(loaded, path)
			return &MockSprite{W: size.X, H: size.Y}, nil
		}
		w := LoadWardrobe(load, "assets", image.Pt(40, 140), nil)
		if len(loaded) != 2 {
			t.Fatalf("loaded %v, want ice twice", loaded)
		}

		left, _ := w.paddleLook(false)
		right, fb := w.paddleLook(true)
		if left == nil {
			t.Error("left paddle should use the ice sprite")
		}
		if right != nil || fb != PaddleSkins[1].Fallback {
			t.Error("right paddle should fall back to the lava glow")
		}

		w.CyclePaddle(1)
		if left, _ := w.paddleLook(false); left != nil {
			t.Error("lava selected: left paddle should fall back")
		}
		if right, _ := w.paddleLook(true); right == nil {
			t.Error("lava selected: right paddle should wear mirrored ice")
		}

		sprite := w.images[0].normal.(*MockSprite)
		w.Close()
		if !sprite.Closed() {
			t.Error("Close should release sprites")
		}
	})
}

func TestTableScene(t *testing.T) {
	cfg := pong.DefaultConfig()
	tbl := pong.NewTable(cfg)
	tbl.ScoreLeft, tbl.ScoreRight = 3, 1
	s := NewMockSink(cfg.Width, cfg.Height)

	t.Run("procedural paddles", func(t *testing.T) {
		Table(s, tbl, LoadWardrobe(nil, "", image.Pt(40, 140), nil), image.Point{})

		ops := s.Ops()
		if ops[0].Kind != "clear" {
			t.Error("scene should start by clearing")
		}
		if got := count(ops, "rect"); got != 10 {
			t.Errorf("rects = %d, want two glowing paddles", got)
		}
		if got := count(ops, "circle"); got != 5 {
			t.Errorf("circles = %d, want one glowing ball", got)
		}
		texts := s.Texts()
		if !contains(texts, "3   -   1") || !contains(texts, "ESC to return to menu") {
			t.Errorf("texts = %q", texts)
		}
	})

	t.Run("sprites and shake", func(t *testing.T) {
		load := func(path string, size image.Point, mirror bool) (Sprite, error) {
			return &MockSprite{W: size.X, H: size.Y}, nil
		}
		w := LoadWardrobe(load, "", image.Pt(40, 140), nil)
		shake := image.Pt(5, -3)
		Table(s, tbl, w, shake)

		var blits []Op
		for _, op := range s.Ops() {
			if op.Kind == "blit" {
				blits = append(blits, op)
			}
		}
		if len(blits) != 2 {
			t.Fatalf("blits = %d, want 2", len(blits))
		}
		// 40px sprite centred on the 20px paddle at x=40, shifted by the shake.
		want := image.Pt(40-10+5, 230-3)
		if blits[0].Point != want {
			t.Errorf("left blit at %v, want %v", blits[0].Point, want)
		}

		ops := s.Ops()
		ball := ops[len(ops)-3]
		if ball.Kind != "circle" || ball.Point != image.Pt(455, 297) {
			t.Errorf("ball op = %+v, want shaken centre", ball)
		}
	})
}

func TestHUD(t *testing.T) {
	s := NewMockSink(900, 600)
	s.Clear(colorBackground)
	HUD(s, score.Status{Gesture: 2, Voice: 1, Combined: 1, Total: 4, Goal: 10, Progress: 0.4})

	ops := s.Ops()
	if ops[2].Kind != "rect" || ops[2].Color != score.ProgressColor(0.4) {
		t.Fatalf("fill op = %+v", ops[2])
	}
	if got, want := ops[2].Rect.Dx(), 540*4/10; got != want {
		t.Errorf("fill width = %d, want %d", got, want)
	}
	for _, want := range []string{"Goal: 4/10", "Crossing: 2", "Voice: 1", "Lateral: 1"} {
		if !contains(s.Texts(), want) {
			t.Errorf("missing %q in %q", want, s.Texts())
		}
	}

	s.Clear(colorBackground)
	HUD(s, score.Status{Goal: 10})
	if got := count(s.Ops(), "rect"); got != 1 {
		t.Errorf("empty progress drew %d rects, want only the track", got)
	}
}

func TestRewardScene(t *testing.T) {
	s := NewMockSink(900, 600)

	s.Clear(colorBackground)
	Reward(s, score.Status{Total: 9, Goal: 10}, 80)
	if len(s.Ops()) != 1 {
		t.Error("locked reward should draw nothing")
	}

	s.Clear(colorBackground)
	Reward(s, score.Status{Total: 10, Goal: 10, Unlocked: true, Elapsed: 2 * time.Second}, 80)
	ops := s.Ops()
	if ops[1].Kind != "dim" || ops[1].Alpha != 0.6 {
		t.Errorf("first overlay op = %+v, want dim 0.6", ops[1])
	}
	if !contains(s.Texts(), "PRIZE UNLOCKED!") {
		t.Errorf("texts = %q", s.Texts())
	}
	if got := count(ops, "circle"); got != 80 {
		t.Errorf("confetti = %d, want 80", got)
	}
}

func TestMenuScene(t *testing.T) {
	s := NewMockSink(900, 600)
	Menu(s, []string{"Play", "Skins", "Quit"}, 1, BallSkins[0].Color)

	var buttons []Op
	for _, op := range s.Ops() {
		if op.Kind == "rect" && (op.Color == colorButton || op.Color == colorButtonHot) {
			buttons = append(buttons, op)
		}
	}
	if len(buttons) != 3 {
		t.Fatalf("buttons = %d, want 3", len(buttons))
	}
	if buttons[1].Color != colorButtonHot || buttons[0].Color != colorButton {
		t.Error("selected item should be highlighted")
	}
	for _, want := range []string{"Play", "Skins", "Quit"} {
		if !contains(s.Texts(), want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestSkinsScene(t *testing.T) {
	s := NewMockSink(900, 600)
	w := LoadWardrobe(nil, "", image.Pt(40, 140), nil)
	w.CycleBall(2)

	Skins(s, w, TabBall)
	if !contains(s.Texts(), "Ice Blue") || !contains(s.Texts(), "SKINS - Ball") {
		t.Errorf("texts = %q", s.Texts())
	}

	Skins(s, w, TabPaddle)
	if !contains(s.Texts(), "Ice Platform") {
		t.Errorf("texts = %q", s.Texts())
	}
}

func TestMockSink_Present(t *testing.T) {
	s := NewMockSink(10, 10)
	s.PushKeys(KeyEnter, KeyEsc)

	for _, want := range []Key{KeyEnter, KeyEsc, KeyNone} {
		k, err := s.Present()
		if err != nil || k != want {
			t.Errorf("Present = %v, %v; want %v", k, err, want)
		}
	}

	s.SetPresentError(ErrWindowClosed)
	if _, err := s.Present(); !errors.Is(err, ErrWindowClosed) {
		t.Errorf("err = %v", err)
	}
	if s.Presents() != 4 {
		t.Errorf("Presents = %d, want 4", s.Presents())
	}
}

func TestDrawLandmarks_NilFrame(t *testing.T) {
	// Must not panic without a frame.
	DrawLandmarks(nil, detector.Frame{Hands: []detector.HandLandmarks{detector.OpenPalmLandmarks()}})
}

func TestLoadSprite_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.png")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("temp path unexpectedly exists")
	}
	if _, err := LoadSprite(path, image.Pt(40, 140), false); err == nil {
		t.Error("expected error for missing image")
	}
	if _, err := CanvasLoader(path, image.Pt(40, 140), true); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestCanvas_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping window test in short mode")
	}
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no display available")
	}

	c := NewCanvas("handpong test", 320, 240, 1)
	defer c.Close()

	c.Clear(colorBackground)
	GlowRect(c, image.Rect(10, 10, 30, 100), colorLateral)
	c.TextCentered("test", image.Pt(160, 120), 1, colorWhite)
	c.Dim(0.5)
	if _, err := c.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
}
