package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session is one play session from Play to return to the menu.
type Session struct {
	ID         string
	BallSkin   string
	PaddleSkin string
	ScoreLeft  int
	ScoreRight int
	// EndReason is empty while the session is running.
	EndReason string
	StartedAt time.Time
	EndedAt   *time.Time
}

// Active reports whether the session has not ended.
func (s *Session) Active() bool {
	return s.EndedAt == nil
}

// SessionRepository provides access to sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

const sessionColumns = `id, ball_skin, paddle_skin, score_left, score_right, end_reason, started_at, ended_at`

// Create inserts a new session. A missing ID or start time is filled in.
func (r *SessionRepository) Create(sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, ball_skin, paddle_skin, score_left, score_right, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.BallSkin, sess.PaddleSkin, sess.ScoreLeft, sess.ScoreRight, sess.StartedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// Latest retrieves the most recently started session.
func (r *SessionRepository) Latest() (*Session, error) {
	row := r.db.QueryRow(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1`)
	return scanSession(row)
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateScore stores the current match score.
func (r *SessionRepository) UpdateScore(id string, left, right int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET score_left = ?, score_right = ? WHERE id = ?`,
		left, right, id,
	)
	if err != nil {
		return err
	}
	return expectRow(result)
}

// End marks a running session as finished.
func (r *SessionRepository) End(id, reason string, at time.Time) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET end_reason = ?, ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		reason, at, id,
	)
	if err != nil {
		return err
	}
	return expectRow(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	sess := &Session{}
	var ended sql.NullTime

	err := row.Scan(&sess.ID, &sess.BallSkin, &sess.PaddleSkin, &sess.ScoreLeft, &sess.ScoreRight,
		&sess.EndReason, &sess.StartedAt, &ended)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ended.Valid {
		t := ended.Time
		sess.EndedAt = &t
	}
	return sess, nil
}

func expectRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
