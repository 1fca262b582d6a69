// Package metrics exposes game and pipeline counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for a handpong process.
type Metrics struct {
	registry *prometheus.Registry

	framesTotal     prometheus.Counter
	frameDuration   prometheus.Histogram
	detectErrors    prometheus.Counter
	handsVisible    prometheus.Gauge
	gesturesTotal   *prometheus.CounterVec
	voiceMatches    prometheus.Counter
	paddleHits      *prometheus.CounterVec
	pointsTotal     *prometheus.CounterVec
	rewardsUnlocked prometheus.Counter
	goalProgress    prometheus.Gauge
	sessionsTotal   prometheus.Counter
	requestsTotal   prometheus.Counter
	requestErrors   prometheus.Counter
}

// New creates and registers the metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_frames_total",
			Help: "Total number of camera frames processed",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "handpong_frame_duration_seconds",
			Help:    "Time spent detecting, updating and drawing one frame",
			Buckets: []float64{0.005, 0.01, 0.02, 0.033, 0.05, 0.1, 0.2, 0.5},
		}),
		detectErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_detect_errors_total",
			Help: "Total number of frames the landmark detector failed on",
		}),
		handsVisible: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "handpong_hands_visible",
			Help: "Number of hands detected in the latest frame",
		}),
		gesturesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "handpong_gestures_total",
			Help: "Total number of gestures triggered",
		}, []string{"kind"}),
		voiceMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_voice_matches_total",
			Help: "Total number of trigger phrases heard",
		}),
		paddleHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "handpong_paddle_hits_total",
			Help: "Total number of ball hits per paddle",
		}, []string{"side"}),
		pointsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "handpong_points_total",
			Help: "Total number of points won per side",
		}, []string{"side"}),
		rewardsUnlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_rewards_unlocked_total",
			Help: "Total number of times the reward goal was reached",
		}),
		goalProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "handpong_goal_progress_ratio",
			Help: "Progress toward the reward goal, between 0 and 1",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_sessions_total",
			Help: "Total number of play sessions started",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_http_requests_total",
			Help: "Total number of status server requests",
		}),
		requestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "handpong_http_errors_total",
			Help: "Total number of status server responses with status 4xx or 5xx",
		}),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.frameDuration,
		m.detectErrors,
		m.handsVisible,
		m.gesturesTotal,
		m.voiceMatches,
		m.paddleHits,
		m.pointsTotal,
		m.rewardsUnlocked,
		m.goalProgress,
		m.sessionsTotal,
		m.requestsTotal,
		m.requestErrors,
	)
	return m
}

// ObserveFrame records one processed frame and how long it took.
func (m *Metrics) ObserveFrame(d time.Duration, hands int) {
	m.framesTotal.Inc()
	m.frameDuration.Observe(d.Seconds())
	m.handsVisible.Set(float64(hands))
}

// IncDetectErrors counts a failed detection.
func (m *Metrics) IncDetectErrors() {
	m.detectErrors.Inc()
}

// IncGesture counts a triggered gesture of the given kind.
func (m *Metrics) IncGesture(kind string) {
	m.gesturesTotal.WithLabelValues(kind).Inc()
}

// AddVoiceMatches counts n newly heard phrases.
func (m *Metrics) AddVoiceMatches(n int) {
	if n > 0 {
		m.voiceMatches.Add(float64(n))
	}
}

// IncPaddleHit counts a hit on the given side's paddle.
func (m *Metrics) IncPaddleHit(side string) {
	m.paddleHits.WithLabelValues(side).Inc()
}

// IncPoint counts a point won by the given side.
func (m *Metrics) IncPoint(side string) {
	m.pointsTotal.WithLabelValues(side).Inc()
}

// IncRewardUnlocked counts a reached goal.
func (m *Metrics) IncRewardUnlocked() {
	m.rewardsUnlocked.Inc()
}

// SetGoalProgress sets the goal progress gauge.
func (m *Metrics) SetGoalProgress(p float64) {
	m.goalProgress.Set(p)
}

// IncSessions counts a started play session.
func (m *Metrics) IncSessions() {
	m.sessionsTotal.Inc()
}

// IncRequests increments the status server request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the status server error counter.
func (m *Metrics) IncErrors() {
	m.requestErrors.Inc()
}

// Handler returns an http.Handler that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
