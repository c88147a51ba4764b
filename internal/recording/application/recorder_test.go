package application

import (
	"context"
	"testing"
	"time"

	"vitalink/internal/infrastructure/logger"
	"vitalink/internal/recording/domain"
	vitalsdomain "vitalink/internal/vitals/domain"
)

// mockRepository is an in-memory recording repository.
type mockRepository struct {
	sessions map[string]domain.Session
	samples  []domain.StoredSample
	err      error
}

func newMockRepository() *mockRepository {
	return &mockRepository{sessions: make(map[string]domain.Session)}
}

func (m *mockRepository) CreateSession(ctx context.Context, session domain.Session) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockRepository) CloseSession(ctx context.Context, id string, endedAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.EndedAt = &endedAt
	m.sessions[id] = s
	return nil
}

func (m *mockRepository) InsertSample(ctx context.Context, sample domain.StoredSample) error {
	if m.err != nil {
		return m.err
	}
	m.samples = append(m.samples, sample)
	return nil
}

func (m *mockRepository) ListSessions(ctx context.Context) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockRepository) ListSamples(ctx context.Context, sessionID string, filters domain.SampleFilters) ([]domain.StoredSample, error) {
	out := make([]domain.StoredSample, 0)
	for _, s := range m.samples {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestRecorder(repo domain.Repository) *Recorder {
	r := NewRecorder(logger.DefaultLogger(), repo)
	id := 0
	r.newID = func() string {
		id++
		return map[int]string{1: "session-1", 2: "session-2"}[id]
	}
	return r
}

func TestRecorder_EmitOutsideSessionIsNoop(t *testing.T) {
	repo := newMockRepository()
	r := newTestRecorder(repo)

	err := r.Emit(context.Background(), vitalsdomain.NewSample(time.Now(), 80, 36.6, 98))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.samples) != 0 {
		t.Errorf("expected no recorded samples, got %d", len(repo.samples))
	}
}

func TestRecorder_RecordsSamplesWithinSession(t *testing.T) {
	repo := newMockRepository()
	r := newTestRecorder(repo)
	ctx := context.Background()

	if err := r.StartSession(ctx, "demo"); err != nil {
		t.Fatalf("unexpected error starting session: %v", err)
	}

	r.Emit(ctx, vitalsdomain.NewSample(time.Now(), 80, 36.6, 98))
	r.Emit(ctx, vitalsdomain.NewSample(time.Now(), 81, 36.7, 97))

	if err := r.StopSession(ctx); err != nil {
		t.Fatalf("unexpected error stopping session: %v", err)
	}

	// After the session closed, further emits are dropped.
	r.Emit(ctx, vitalsdomain.NewSample(time.Now(), 82, 36.8, 96))

	if len(repo.samples) != 2 {
		t.Fatalf("expected 2 recorded samples, got %d", len(repo.samples))
	}
	for _, s := range repo.samples {
		if s.SessionID != "session-1" {
			t.Errorf("expected samples under session-1, got %q", s.SessionID)
		}
	}

	session := repo.sessions["session-1"]
	if session.EndedAt == nil {
		t.Error("expected session-1 to be closed")
	}
}

func TestRecorder_StartClosesPreviousSession(t *testing.T) {
	repo := newMockRepository()
	r := newTestRecorder(repo)
	ctx := context.Background()

	r.StartSession(ctx, "demo")
	r.StartSession(ctx, "ble")

	first := repo.sessions["session-1"]
	if first.EndedAt == nil {
		t.Error("expected the first session to be closed by the second start")
	}

	second := repo.sessions["session-2"]
	if second.Source != "ble" {
		t.Errorf("expected second session source ble, got %q", second.Source)
	}
}

func TestRecorder_StopWithoutSessionIsNoop(t *testing.T) {
	repo := newMockRepository()
	r := newTestRecorder(repo)

	if err := r.StopSession(context.Background()); err != nil {
		t.Errorf("expected stopping without a session to succeed, got %v", err)
	}
}
