package app

import (
	"image"
	"math/rand"
	"time"

	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/gesture"
	"github.com/ayusman/handpong/internal/pong"
	"github.com/ayusman/handpong/internal/score"
	"github.com/ayusman/handpong/internal/voice"
)

// Snapshot is everything one tick produced.
type Snapshot struct {
	Frame int       `json:"frame"`
	At    time.Time `json:"at"`
	Hands int       `json:"hands"`

	ScoreLeft  int     `json:"score_left"`
	ScoreRight int     `json:"score_right"`
	BallX      float64 `json:"ball_x"`
	BallY      float64 `json:"ball_y"`
	LeftY      float64 `json:"left_y"`
	RightY     float64 `json:"right_y"`
	// Hit is the paddle the ball touched this tick.
	Hit pong.Side `json:"hit"`
	// Scorer is the side that won a point this tick.
	Scorer pong.Side `json:"scorer"`

	Crossing int     `json:"crossing"`
	Voice    int     `json:"voice"`
	Lateral  int     `json:"lateral"`
	Total    int     `json:"total"`
	Goal     int     `json:"goal"`
	Progress float64 `json:"progress"`
	Unlocked bool    `json:"unlocked"`

	Gestures []gesture.Event `json:"gestures,omitempty"`
	// VoiceMatches is how many phrases were recognised since the last tick.
	VoiceMatches int `json:"voice_matches,omitempty"`

	Shake  image.Point  `json:"-"`
	Status score.Status `json:"-"`
}

// Session is the state of one play session: the table, the gesture
// machines and the reward. It is owned by the frame loop. Only the voice
// counter is shared, with the background listener.
type Session struct {
	cfg Config

	table      *pong.Table
	controller *pong.Controller
	tracker    *gesture.Tracker
	voice      *voice.Counter
	reward     *score.Reward
	rng        *rand.Rand

	frames    int
	lastVoice int
}

// NewSession starts a session with a fresh table and cleared counters.
// A nil voice counter gets a private one.
func NewSession(cfg Config, vc *voice.Counter) *Session {
	if vc == nil {
		vc = new(voice.Counter)
	}
	vc.Reset()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	table := pong.NewTable(cfg.Pong)
	tracker := gesture.NewTracker(cfg.Gesture)

	return &Session{
		cfg:        cfg,
		table:      table,
		controller: pong.NewController(cfg.Pong, &table.Left, &table.Right),
		tracker:    tracker,
		voice:      vc,
		reward: score.NewReward(cfg.Score, score.Counters{
			Gesture:  tracker.Counter(gesture.KindCrossing),
			Voice:    vc,
			Combined: tracker.Counter(gesture.KindLateral),
		}),
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Tick advances the session by one video frame: paddles follow the
// hands, the gesture machines step, the ball moves and the reward is
// re-evaluated. Given the same frames, times, seed and voice counts it
// produces the same snapshots.
func (s *Session) Tick(f detector.Frame, now time.Time) Snapshot {
	s.frames++

	s.controller.Update(f)
	events := s.tracker.Update(f, now)
	res := s.table.Step()
	st := s.reward.Update(now)

	var matches int
	if !st.JustReset && st.Voice > s.lastVoice {
		matches = st.Voice - s.lastVoice
	}
	s.lastVoice = st.Voice

	var shake image.Point
	if res.Hit {
		dx, dy := pong.Shake(s.rng, s.cfg.Pong.ShakeIntensity)
		shake = image.Pt(dx, dy)
	}

	t := s.table
	return Snapshot{
		Frame:        s.frames,
		At:           now,
		Hands:        len(f.Hands),
		ScoreLeft:    t.ScoreLeft,
		ScoreRight:   t.ScoreRight,
		BallX:        t.Ball.X,
		BallY:        t.Ball.Y,
		LeftY:        t.Left.Y,
		RightY:       t.Right.Y,
		Hit:          res.HitBy,
		Scorer:       res.Scorer,
		Crossing:     st.Gesture,
		Voice:        st.Voice,
		Lateral:      st.Combined,
		Total:        st.Total,
		Goal:         st.Goal,
		Progress:     st.Progress,
		Unlocked:     st.Unlocked,
		Gestures:     events,
		VoiceMatches: matches,
		Shake:        shake,
		Status:       st,
	}
}

// Table returns the session's table for drawing.
func (s *Session) Table() *pong.Table {
	return s.table
}

// Frames returns the number of ticks so far.
func (s *Session) Frames() int {
	return s.frames
}
