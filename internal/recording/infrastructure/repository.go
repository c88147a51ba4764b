package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"vitalink/internal/recording/domain"
)

// Repository implements the recording repository interface using SQLite.
// Reads and writes go through separate pools; the write pool is expected to
// be limited to a single connection.
type Repository struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// NewRepository creates a new SQLite recording repository
func NewRepository(readDB *sql.DB, writeDB *sql.DB) *Repository {
	return &Repository{
		readDB:  readDB,
		writeDB: writeDB,
	}
}

func (r *Repository) CreateSession(ctx context.Context, session domain.Session) error {
	_, err := r.writeDB.ExecContext(ctx,
		`INSERT INTO sessions (id, source, started_at) VALUES (?, ?, ?)`,
		session.ID, session.Source, session.StartedAt,
	)
	return err
}

func (r *Repository) CloseSession(ctx context.Context, id string, endedAt time.Time) error {
	res, err := r.writeDB.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		endedAt, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) InsertSample(ctx context.Context, sample domain.StoredSample) error {
	_, err := r.writeDB.ExecContext(ctx,
		`INSERT INTO samples (session_id, ts, heart_rate, temperature, oxygen) VALUES (?, ?, ?, ?, ?)`,
		sample.SessionID, sample.Timestamp, sample.HeartRate, sample.Temperature, sample.Oxygen,
	)
	return err
}

func (r *Repository) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.readDB.QueryContext(ctx,
		`SELECT id, source, started_at, ended_at FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		var endedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Source, &s.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			t := endedAt.Time
			s.EndedAt = &t
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Repository) ListSamples(ctx context.Context, sessionID string, filters domain.SampleFilters) ([]domain.StoredSample, error) {
	var exists bool
	err := r.readDB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)`, sessionID,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrSessionNotFound
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 1000
	}

	rows, err := r.readDB.QueryContext(ctx,
		`SELECT session_id, ts, heart_rate, temperature, oxygen
		 FROM samples WHERE session_id = ? ORDER BY ts, id LIMIT ? OFFSET ?`,
		sessionID, limit, filters.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]domain.StoredSample, 0)
	for rows.Next() {
		var s domain.StoredSample
		if err := rows.Scan(&s.SessionID, &s.Timestamp, &s.HeartRate, &s.Temperature, &s.Oxygen); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
