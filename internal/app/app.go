// Package app runs the game: the menu and skins screens, and the play
// loop that turns camera frames into paddle motion, gesture and voice
// counts and the reward overlay.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/gesture"
	"github.com/ayusman/handpong/internal/log"
	"github.com/ayusman/handpong/internal/metrics"
	"github.com/ayusman/handpong/internal/pong"
	"github.com/ayusman/handpong/internal/render"
	"github.com/ayusman/handpong/internal/score"
	"github.com/ayusman/handpong/internal/server"
	"github.com/ayusman/handpong/internal/store"
	"github.com/ayusman/handpong/internal/voice"
)

// ErrCameraFailed wraps camera open and read failures that end a session.
var ErrCameraFailed = errors.New("camera failed")

// Phase is a screen of the menu state machine.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseSkins
	PhasePlay
	PhaseQuit
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseSkins:
		return "skins"
	case PhasePlay:
		return "play"
	case PhaseQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Session end reasons recorded in the ledger.
const (
	EndEscape   = "escape"
	EndCamera   = "camera"
	EndWindow   = "window"
	EndShutdown = "shutdown"
)

var menuItems = []string{"PLAY", "SKINS", "QUIT"}

var menuTargets = []Phase{PhasePlay, PhaseSkins, PhaseQuit}

// Config holds the game tunables and the collaborators of the App.
// Store, Metrics, Hub and Feed are optional.
type Config struct {
	Pong    pong.Config
	Gesture gesture.Config
	Score   score.Config
	// Seed seeds the screen shake; 0 uses the clock.
	Seed int64
	// FramePeriod is the target frame interval; 0 runs unpaced.
	FramePeriod time.Duration

	Camera   capture.Camera
	Detector detector.Detector
	Sink     render.Sink
	Wardrobe *render.Wardrobe
	// Voice is the counter the background listener increments.
	Voice *voice.Counter

	Store   *store.Store
	Metrics *metrics.Metrics
	Hub     *server.Hub
	Feed    *server.Feed
	Logger  *slog.Logger

	// Now overrides the clock.
	Now func() time.Time
}

// App is the top-level state machine: Menu, Skins, Play and Quit.
// All its methods must run on the goroutine that owns the Sink.
type App struct {
	config Config
	logger *slog.Logger
	now    func() time.Time

	phase    Phase
	selected int
	tab      render.SkinTab
}

// New creates an App starting at the menu.
func New(config Config) *App {
	if config.Wardrobe == nil {
		config.Wardrobe = render.LoadWardrobe(nil, "", image.Point{}, nil)
	}
	if config.Voice == nil {
		config.Voice = new(voice.Counter)
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &App{
		config: config,
		logger: log.Or(config.Logger),
		now:    now,
		phase:  PhaseMenu,
	}
}

// Phase returns the current screen.
func (a *App) Phase() Phase {
	return a.phase
}

// Run drives the state machine until Quit, the window is closed, or ctx
// is cancelled. A failed session returns to the menu.
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		var err error
		switch a.phase {
		case PhaseMenu:
			a.phase, err = a.menu(ctx)
		case PhaseSkins:
			a.phase, err = a.skins(ctx)
		case PhasePlay:
			err = a.Play(ctx)
			if errors.Is(err, ErrCameraFailed) {
				a.logger.Warn("session ended", "error", err)
				err = nil
			}
			a.phase = PhaseMenu
		default:
			return nil
		}

		if errors.Is(err, render.ErrWindowClosed) {
			a.logger.Info("window closed")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) menu(ctx context.Context) (Phase, error) {
	for ctx.Err() == nil {
		render.Menu(a.config.Sink, menuItems, a.selected, a.config.Wardrobe.Ball().Color)
		key, err := a.config.Sink.Present()
		if err != nil {
			return PhaseQuit, err
		}

		switch key {
		case render.KeyUp:
			a.selected = (a.selected + len(menuItems) - 1) % len(menuItems)
		case render.KeyDown:
			a.selected = (a.selected + 1) % len(menuItems)
		case render.KeyEnter, render.KeySpace:
			return menuTargets[a.selected], nil
		case render.KeyEsc:
			return PhaseQuit, nil
		}
	}
	return PhaseQuit, nil
}

func (a *App) skins(ctx context.Context) (Phase, error) {
	w := a.config.Wardrobe
	for ctx.Err() == nil {
		render.Skins(a.config.Sink, w, a.tab)
		key, err := a.config.Sink.Present()
		if err != nil {
			return PhaseQuit, err
		}

		switch key {
		case render.KeyTab:
			a.tab = 1 - a.tab
		case render.KeyLeft, render.KeyRight:
			delta := 1
			if key == render.KeyLeft {
				delta = -1
			}
			if a.tab == render.TabPaddle {
				w.CyclePaddle(delta)
			} else {
				w.CycleBall(delta)
			}
		case render.KeyEsc, render.KeyEnter:
			a.logger.Debug("skins selected", "ball", w.Ball().Name, "paddle", w.Paddle().Name)
			return PhaseMenu, nil
		}
	}
	return PhaseQuit, nil
}

// Play runs one session until ESC, window close, cancellation or a
// camera failure. Camera failures are returned wrapping ErrCameraFailed.
func (a *App) Play(ctx context.Context) error {
	cam := a.config.Camera
	if err := cam.Open(); err != nil {
		return fmt.Errorf("%w: %v", ErrCameraFailed, err)
	}
	defer cam.Close()

	sess := NewSession(a.config, a.config.Voice)
	id := a.startLedger()
	if m := a.config.Metrics; m != nil {
		m.IncSessions()
	}
	a.logger.Info("session started", "session", id)

	reason := EndEscape
	defer func() {
		a.endLedger(id, sess, reason)
		a.logger.Info("session ended", "session", id, "reason", reason, "frames", sess.Frames(),
			"score", fmt.Sprintf("%d-%d", sess.Table().ScoreLeft, sess.Table().ScoreRight))
	}()

	var pace <-chan time.Time
	if a.config.FramePeriod > 0 {
		ticker := time.NewTicker(a.config.FramePeriod)
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			reason = EndShutdown
			return nil
		default:
		}

		key, err := a.frame(sess, id)
		if err != nil {
			if errors.Is(err, ErrCameraFailed) {
				reason = EndCamera
			} else {
				reason = EndWindow
			}
			return err
		}
		if key == render.KeyEsc {
			return nil
		}

		if pace != nil {
			select {
			case <-ctx.Done():
				reason = EndShutdown
				return nil
			case <-pace:
			}
		}
	}
}

// frame runs one iteration of the play loop and returns the key pressed.
func (a *App) frame(sess *Session, id string) (render.Key, error) {
	start := a.now()

	img, err := a.config.Camera.ReadFrame()
	if err != nil {
		return render.KeyNone, fmt.Errorf("%w: %v", ErrCameraFailed, err)
	}
	defer img.Close()

	f, err := a.config.Detector.Detect(img)
	if err != nil {
		a.logger.Debug("detection failed", "error", err)
		if m := a.config.Metrics; m != nil {
			m.IncDetectErrors()
		}
		f = detector.Frame{}
	}

	snap := sess.Tick(f, start)
	a.record(id, snap)

	render.DrawLandmarks(img, f)
	a.draw(sess, snap, img)

	if hub := a.config.Hub; hub != nil {
		if err := hub.Publish(snap); err != nil {
			a.logger.Debug("snapshot publish failed", "error", err)
		}
	}

	key, err := a.config.Sink.Present()
	if m := a.config.Metrics; m != nil {
		m.ObserveFrame(a.now().Sub(start), len(f.Hands))
	}
	return key, err
}

func (a *App) draw(sess *Session, snap Snapshot, img *gocv.Mat) {
	s := a.config.Sink
	render.Table(s, sess.Table(), a.config.Wardrobe, snap.Shake)
	render.Preview(s, img)
	render.HUD(s, snap.Status)
	render.Reward(s, snap.Status, a.config.Score.Confetti)

	feed := a.config.Feed
	if feed == nil || !feed.Wanted() {
		return
	}
	if enc, ok := s.(render.Encoder); ok {
		buf, err := enc.EncodeJPEG()
		if err != nil {
			a.logger.Debug("frame encode failed", "error", err)
			return
		}
		feed.Publish(buf)
	}
}
