package domain

import "time"

// Session groups the samples recorded during one source lifetime.
type Session struct {
	ID        string
	Source    string
	StartedAt time.Time
	EndedAt   *time.Time
}

// StoredSample is one persisted observation within a session.
type StoredSample struct {
	SessionID   string
	Timestamp   time.Time
	HeartRate   int
	Temperature float64
	Oxygen      int
}
