package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per play session
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			ball_skin TEXT NOT NULL DEFAULT '',
			paddle_skin TEXT NOT NULL DEFAULT '',
			score_left INTEGER NOT NULL DEFAULT 0,
			score_right INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,

		// Events table - gestures, voice matches and game events within a session
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			kind TEXT NOT NULL CHECK(kind IN ('crossing', 'lateral', 'voice', 'hit', 'point', 'unlock', 'reset')),
			side TEXT NOT NULL DEFAULT '',
			count INTEGER NOT NULL DEFAULT 0,
			at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_kind ON events(session_id, kind)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
