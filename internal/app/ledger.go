package app

import (
	"github.com/ayusman/handpong/internal/pong"
	"github.com/ayusman/handpong/internal/store"
)

// startLedger records a new session and returns its id, or "" without a
// store.
func (a *App) startLedger() string {
	st := a.config.Store
	if st == nil {
		return ""
	}

	w := a.config.Wardrobe
	sess := &store.Session{
		BallSkin:   w.Ball().Name,
		PaddleSkin: w.Paddle().Name,
		StartedAt:  a.now(),
	}
	if err := st.Sessions().Create(sess); err != nil {
		a.logger.Warn("failed to record session", "error", err)
		return ""
	}
	return sess.ID
}

func (a *App) endLedger(id string, sess *Session, reason string) {
	st := a.config.Store
	if st == nil || id == "" {
		return
	}

	t := sess.Table()
	if err := st.Sessions().UpdateScore(id, t.ScoreLeft, t.ScoreRight); err != nil {
		a.logger.Warn("failed to record final score", "session", id, "error", err)
	}
	if err := st.Sessions().End(id, reason, a.now()); err != nil {
		a.logger.Warn("failed to end session", "session", id, "error", err)
	}
}

// record writes the tick's events to the ledger and metrics.
func (a *App) record(id string, snap Snapshot) {
	events := ledgerEvents(id, snap)

	if m := a.config.Metrics; m != nil {
		for _, e := range events {
			switch e.Kind {
			case store.EventCrossing, store.EventLateral:
				m.IncGesture(string(e.Kind))
			case store.EventHit:
				m.IncPaddleHit(e.Side)
			case store.EventPoint:
				m.IncPoint(e.Side)
			case store.EventUnlock:
				m.IncRewardUnlocked()
			}
		}
		m.AddVoiceMatches(snap.VoiceMatches)
		m.SetGoalProgress(snap.Progress)
	}

	st := a.config.Store
	if st == nil || id == "" {
		return
	}
	for _, e := range events {
		if err := st.Events().Record(e); err != nil {
			a.logger.Warn("failed to record event", "kind", e.Kind, "error", err)
		}
	}
	if snap.Scorer != pong.SideNone {
		if err := st.Sessions().UpdateScore(id, snap.ScoreLeft, snap.ScoreRight); err != nil {
			a.logger.Warn("failed to record score", "error", err)
		}
	}
}

// ledgerEvents lists what happened in one tick, in the order it happened.
func ledgerEvents(sessionID string, snap Snapshot) []*store.Event {
	var events []*store.Event
	add := func(kind store.EventKind, side string, count int) {
		events = append(events, &store.Event{
			SessionID: sessionID,
			Kind:      kind,
			Side:      side,
			Count:     count,
			At:        snap.At,
		})
	}

	for _, g := range snap.Gestures {
		add(store.EventKind(g.Kind), "", g.Count)
	}
	for i := 0; i < snap.VoiceMatches; i++ {
		add(store.EventVoice, "", snap.Voice-snap.VoiceMatches+i+1)
	}
	if snap.Hit != pong.SideNone {
		add(store.EventHit, snap.Hit.String(), 0)
	}
	if snap.Scorer != pong.SideNone {
		add(store.EventPoint, snap.Scorer.String(), 0)
	}
	if snap.Status.JustUnlocked {
		add(store.EventUnlock, "", snap.Total)
	}
	if snap.Status.JustReset {
		add(store.EventReset, "", 0)
	}
	return events
}
