// Package config assembles the runtime configuration from a .env file and
// HANDPONG_* environment variables, on top of each package's defaults.
package config

import (
	"fmt"
	"time"

	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/gesture"
	"github.com/ayusman/handpong/internal/pong"
	"github.com/ayusman/handpong/internal/score"
	"github.com/ayusman/handpong/internal/store"
	"github.com/ayusman/handpong/internal/voice"
)

const prefix = "HANDPONG_"

// Config is the full runtime configuration.
type Config struct {
	LogLevel  string
	LogFormat string

	// HTTPAddr is the status server listen address; empty disables it.
	HTTPAddr string
	// AssetsDir holds the paddle skin images.
	AssetsDir string
	// LedgerDSN is the session ledger database.
	LedgerDSN string
	// Title is the game window title.
	Title string
	// Seed seeds the screen-shake generator; 0 uses the clock.
	Seed int64

	Camera   capture.Config
	Detector detector.Config
	Gesture  gesture.Config
	Pong     pong.Config
	Score    score.Config
	Voice    voice.Config
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		AssetsDir: "assets",
		LedgerDSN: store.MemoryDSN,
		Title:     "Hand Pong",
		Camera:    capture.DefaultConfig(),
		Detector:  detector.DefaultConfig(),
		Gesture:   gesture.DefaultConfig(),
		Pong:      pong.DefaultConfig(),
		Score:     score.DefaultConfig(),
		Voice:     voice.DefaultConfig(),
	}
}

// Load reads .env files (see LoadEnv), applies the environment over the
// defaults and validates the result.
func Load(paths ...string) (Config, error) {
	if err := LoadEnv(paths...); err != nil {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv applies HANDPONG_* variables over Default without validating.
func FromEnv() Config {
	c := Default()

	c.LogLevel = env(c.LogLevel, "LOG_LEVEL")
	c.LogFormat = env(c.LogFormat, "LOG_FORMAT")
	c.HTTPAddr = env(c.HTTPAddr, "HTTP_ADDR")
	c.AssetsDir = env(c.AssetsDir, "ASSETS_DIR")
	c.LedgerDSN = env(c.LedgerDSN, "LEDGER_DSN")
	c.Title = env(c.Title, "TITLE")
	c.Seed = int64(envInt(int(c.Seed), "SEED"))

	cam := &c.Camera
	cam.DeviceID = envInt(cam.DeviceID, "CAMERA_DEVICE")
	cam.Width = envInt(cam.Width, "CAMERA_WIDTH")
	cam.Height = envInt(cam.Height, "CAMERA_HEIGHT")
	cam.FPS = envInt(cam.FPS, "FPS")
	cam.Mirror = GetEnvBool(prefix+"CAMERA_MIRROR", cam.Mirror)

	det := &c.Detector
	det.MaxHands = envInt(det.MaxHands, "MAX_HANDS")
	det.MinConfidence = envFloat(det.MinConfidence, "MIN_DETECTION_CONFIDENCE")
	det.MinTrackingConf = envFloat(det.MinTrackingConf, "MIN_TRACKING_CONFIDENCE")
	det.Script = env(det.Script, "DETECTOR_SCRIPT")

	g := &c.Gesture
	g.HistoryLength = envInt(g.HistoryLength, "HISTORY_LENGTH")
	g.CrossingThreshold = envFloat(g.CrossingThreshold, "CROSSING_THRESHOLD")
	g.CrossingCooldown = envDuration(g.CrossingCooldown, "CROSSING_COOLDOWN")
	g.LateralMagnitude = envFloat(g.LateralMagnitude, "LATERAL_MAGNITUDE")
	g.LateralCooldown = envDuration(g.LateralCooldown, "LATERAL_COOLDOWN")

	p := &c.Pong
	p.Width = envInt(p.Width, "WIDTH")
	p.Height = envInt(p.Height, "HEIGHT")
	p.PaddleWidth = envInt(p.PaddleWidth, "PADDLE_WIDTH")
	p.PaddleHeight = envInt(p.PaddleHeight, "PADDLE_HEIGHT")
	p.PaddleMargin = envInt(p.PaddleMargin, "PADDLE_MARGIN")
	p.BallRadius = envInt(p.BallRadius, "BALL_RADIUS")
	p.BaseSpeed = envFloat(p.BaseSpeed, "BALL_SPEED")
	p.HitIncrement = envFloat(p.HitIncrement, "HIT_INCREMENT")
	p.DeflectDivisor = envFloat(p.DeflectDivisor, "DEFLECT_DIVISOR")
	p.Smoothing = envFloat(p.Smoothing, "SMOOTHING")
	p.ShakeIntensity = envInt(p.ShakeIntensity, "SHAKE_INTENSITY")

	s := &c.Score
	s.Goal = envInt(s.Goal, "GOAL")
	s.Duration = envDuration(s.Duration, "REWARD_DURATION")
	s.Confetti = envInt(s.Confetti, "CONFETTI")

	v := &c.Voice
	v.TranscriberURL = env(v.TranscriberURL, "STT_URL")
	v.Device = env(v.Device, "MIC_DEVICE")
	v.SampleRate = envInt(v.SampleRate, "SAMPLE_RATE")
	v.EnergyFactor = envFloat(v.EnergyFactor, "ENERGY_FACTOR")
	v.MinThreshold = envFloat(v.MinThreshold, "ENERGY_MIN")
	v.Pause = envDuration(v.Pause, "PAUSE")
	v.MaxPhrase = envDuration(v.MaxPhrase, "MAX_PHRASE")
	v.ListenTimeout = envDuration(v.ListenTimeout, "LISTEN_TIMEOUT")

	return c
}

// Validate checks every component configuration.
func (c Config) Validate() error {
	if c.LedgerDSN == "" {
		return fmt.Errorf("ledger dsn must not be empty")
	}

	checks := []struct {
		name string
		fn   func() error
	}{
		{"camera", c.Camera.Validate},
		{"detector", c.Detector.Validate},
		{"gesture", c.Gesture.Validate},
		{"pong", c.Pong.Validate},
		{"score", c.Score.Validate},
		{"voice", c.Voice.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("invalid %s config: %w", check.name, err)
		}
	}
	return nil
}

// FramePeriod is the target interval between frames.
func (c Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.Camera.FPS)
}

func env(fallback, key string) string {
	return GetEnv(prefix+key, fallback)
}

func envInt(fallback int, key string) int {
	return GetEnvInt(prefix+key, fallback)
}

func envFloat(fallback float64, key string) float64 {
	return GetEnvFloat(prefix+key, fallback)
}

func envDuration(fallback time.Duration, key string) time.Duration {
	return GetEnvDuration(prefix+key, fallback)
}
