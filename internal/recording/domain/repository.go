package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("could not find session with this id")

// SampleFilters narrows ListSamples results.
type SampleFilters struct {
	Limit  int
	Offset int
}

type Repository interface {
	CreateSession(ctx context.Context, session Session) error
	CloseSession(ctx context.Context, id string, endedAt time.Time) error
	InsertSample(ctx context.Context, sample StoredSample) error
	ListSessions(ctx context.Context) ([]Session, error)
	ListSamples(ctx context.Context, sessionID string, filters SampleFilters) ([]StoredSample, error)
}
