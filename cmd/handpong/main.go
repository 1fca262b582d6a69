package main

import (
	"context"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ayusman/handpong/internal/app"
	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/config"
	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/log"
	"github.com/ayusman/handpong/internal/metrics"
	"github.com/ayusman/handpong/internal/render"
	"github.com/ayusman/handpong/internal/server"
	"github.com/ayusman/handpong/internal/store"
	"github.com/ayusman/handpong/internal/voice"
)

// HighGUI windows must be driven from the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Error("handpong failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Hand Pong starting", "fps", cfg.Camera.FPS, "goal", cfg.Score.Goal, "voice", cfg.Voice.Enabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(cfg.LedgerDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	met := metrics.New()
	hub := server.NewHub(logger)
	feed := server.NewFeed(server.DefaultStreamPeriod)

	if cfg.HTTPAddr != "" {
		srv := server.New(server.Config{
			Store:   st,
			Metrics: met,
			Hub:     hub,
			Feed:    feed,
			Logger:  logger,
		})
		go func() {
			if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
				logger.Error("status server failed", "error", err)
			}
		}()
	}

	counter := new(voice.Counter)
	if cfg.Voice.Enabled() {
		startVoice(ctx, cfg.Voice, counter, logger)
	} else {
		logger.Info("voice listening disabled, set HANDPONG_STT_URL to enable")
	}

	det := newDetector(cfg.Detector, logger)
	defer det.Close()

	canvas := render.NewCanvas(cfg.Title, cfg.Pong.Width, cfg.Pong.Height, 1)
	defer canvas.Close()

	wardrobe := render.LoadWardrobe(render.CanvasLoader, cfg.AssetsDir,
		image.Pt(cfg.Pong.PaddleWidth, cfg.Pong.PaddleHeight), logger)
	defer wardrobe.Close()

	a := app.New(app.Config{
		Pong:        cfg.Pong,
		Gesture:     cfg.Gesture,
		Score:       cfg.Score,
		Seed:        cfg.Seed,
		FramePeriod: cfg.FramePeriod(),
		Camera:      capture.NewCamera(cfg.Camera),
		Detector:    det,
		Sink:        canvas,
		Wardrobe:    wardrobe,
		Voice:       counter,
		Store:       st,
		Metrics:     met,
		Hub:         hub,
		Feed:        feed,
		Logger:      logger,
	})

	err = a.Run(ctx)
	logger.Info("Hand Pong stopped")
	return err
}

// startVoice runs the listener in the background for the life of the
// process. It is never joined.
func startVoice(ctx context.Context, cfg voice.Config, counter *voice.Counter, logger *slog.Logger) {
	tr, err := voice.NewWSTranscriber(cfg, logger)
	if err != nil {
		logger.Warn("voice listening disabled", "error", err)
		return
	}
	mic := voice.NewRecorder(cfg, logger)
	voice.NewListener(mic, tr, counter, cfg.MaxPhrase, logger).Start(ctx)
	logger.Info("voice listening started", "transcriber", cfg.TranscriberURL)
}

// newDetector prefers MediaPipe and falls back to a detector that never
// sees hands, so the game still runs without the Python service.
func newDetector(cfg detector.Config, logger *slog.Logger) detector.Detector {
	mp, err := detector.NewMediaPipeDetector(cfg)
	if err == nil {
		logger.Info("using MediaPipe hand detection")
		return mp
	}
	logger.Warn("MediaPipe not available, paddles will not move", "error", err)
	return detector.NewMockDetector()
}
