package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveFrame(20*time.Millisecond, 2)
	m.ObserveFrame(30*time.Millisecond, 1)
	m.IncGesture("crossing")
	m.IncGesture("crossing")
	m.IncGesture("lateral")
	m.AddVoiceMatches(3)
	m.AddVoiceMatches(0)
	m.AddVoiceMatches(-2)
	m.IncPaddleHit("left")
	m.IncPoint("right")
	m.IncRewardUnlocked()
	m.SetGoalProgress(0.7)
	m.IncDetectErrors()
	m.IncSessions()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"frames", testutil.ToFloat64(m.framesTotal), 2},
		{"hands", testutil.ToFloat64(m.handsVisible), 1},
		{"crossing", testutil.ToFloat64(m.gesturesTotal.WithLabelValues("crossing")), 2},
		{"lateral", testutil.ToFloat64(m.gesturesTotal.WithLabelValues("lateral")), 1},
		{"voice", testutil.ToFloat64(m.voiceMatches), 3},
		{"hits", testutil.ToFloat64(m.paddleHits.WithLabelValues("left")), 1},
		{"points", testutil.ToFloat64(m.pointsTotal.WithLabelValues("right")), 1},
		{"rewards", testutil.ToFloat64(m.rewardsUnlocked), 1},
		{"progress", testutil.ToFloat64(m.goalProgress), 0.7},
		{"detect errors", testutil.ToFloat64(m.detectErrors), 1},
		{"sessions", testutil.ToFloat64(m.sessionsTotal), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncGesture("crossing")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `handpong_gestures_total{kind="crossing"} 1`) {
		t.Errorf("metrics output missing gesture counter:\n%s", body)
	}
}

func TestRequestMiddleware(t *testing.T) {
	m := New()
	h := RequestMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/ok", "/missing", "/ok"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal); got != 3 {
		t.Errorf("requests = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.requestErrors); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
}
