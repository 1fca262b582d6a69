// Package api provides the read-only HTTP handlers over the session ledger.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/handpong/internal/store"
)

// LatestID addresses the most recently started session.
const LatestID = "latest"

// SessionHandler serves sessions and their events.
type SessionHandler struct {
	store *store.Store
}

// NewSessionHandler creates a new SessionHandler with the given store.
func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

// Routes mounts the handler on r:
// GET / lists sessions, GET /{id} returns one session with its events.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

type sessionResponse struct {
	ID         string `json:"id"`
	BallSkin   string `json:"ball_skin"`
	PaddleSkin string `json:"paddle_skin"`
	ScoreLeft  int    `json:"score_left"`
	ScoreRight int    `json:"score_right"`
	Active     bool   `json:"active"`
	EndReason  string `json:"end_reason,omitempty"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at,omitempty"`
}

type eventResponse struct {
	Kind  string `json:"kind"`
	Side  string `json:"side,omitempty"`
	Count int    `json:"count"`
	At    string `json:"at"`
}

type sessionDetailResponse struct {
	sessionResponse
	Counts map[string]int  `json:"counts"`
	Events []eventResponse `json:"events"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:         s.ID,
		BallSkin:   s.BallSkin,
		PaddleSkin: s.PaddleSkin,
		ScoreLeft:  s.ScoreLeft,
		ScoreRight: s.ScoreRight,
		Active:     s.Active(),
		EndReason:  s.EndReason,
		StartedAt:  s.StartedAt.Format(time.RFC3339),
	}
	if s.EndedAt != nil {
		resp.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	return resp
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// List handles GET /api/sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	resp := listSessionsResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toResponse(s))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/sessions/{id}. The id "latest" picks the newest session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		sess *store.Session
		err  error
	)
	if id == LatestID {
		sess, err = h.store.Sessions().Latest()
	} else {
		sess, err = h.store.Sessions().GetByID(id)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	resp := sessionDetailResponse{
		sessionResponse: toResponse(sess),
		Counts:          make(map[string]int),
		Events:          make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Counts[string(e.Kind)]++
		resp.Events = append(resp.Events, eventResponse{
			Kind:  string(e.Kind),
			Side:  e.Side,
			Count: e.Count,
			At:    e.At.Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
