package application

import (
	"context"

	recordingdomain "vitalink/internal/recording/domain"
)

// SessionService handles recorded-session queries. repo may be nil when
// recording is disabled: sessions list as empty and sample lookups report
// not-found.
type SessionService struct {
	repo recordingdomain.Repository
}

// NewSessionService creates a new session query service
func NewSessionService(repo recordingdomain.Repository) *SessionService {
	return &SessionService{
		repo: repo,
	}
}

// ListSessions returns all recorded sessions, newest first
func (s *SessionService) ListSessions(ctx context.Context) ([]SessionResponse, error) {
	if s.repo == nil {
		return []SessionResponse{}, nil
	}

	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = ToSessionResponse(session)
	}
	return responses, nil
}

// ListSamples returns the samples recorded under one session
func (s *SessionService) ListSamples(ctx context.Context, sessionID string, req ListSamplesRequest) ([]RecordedSampleResponse, error) {
	if s.repo == nil {
		return nil, recordingdomain.ErrSessionNotFound
	}

	filters := recordingdomain.SampleFilters{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if filters.Limit <= 0 {
		filters.Limit = 1000
	}

	samples, err := s.repo.ListSamples(ctx, sessionID, filters)
	if err != nil {
		return nil, err
	}

	responses := make([]RecordedSampleResponse, len(samples))
	for i, sample := range samples {
		responses[i] = ToRecordedSampleResponse(sample)
	}
	return responses, nil
}
