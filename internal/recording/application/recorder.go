package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitalink/internal/recording/domain"
	sharedlogger "vitalink/internal/shared/logger"
	vitalsdomain "vitalink/internal/vitals/domain"
)

// Recorder tees ingested samples into the current recording session. It is
// a no-op while no session is open, so ingestion never depends on a source
// transition having been observed first. The live window never reads from
// here; recording is write-only for the live surfaces.
type Recorder struct {
	logger sharedlogger.Logger
	repo   domain.Repository

	mu      sync.Mutex
	current *domain.Session

	now   func() time.Time
	newID func() string
}

// NewRecorder creates a recorder persisting through the given repository.
func NewRecorder(logger sharedlogger.Logger, repo domain.Repository) *Recorder {
	return &Recorder{
		logger: logger,
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// StartSession opens a new recording session for the named source, closing
// any session left open.
func (r *Recorder) StartSession(ctx context.Context, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		if err := r.repo.CloseSession(ctx, r.current.ID, r.now()); err != nil {
			r.logger.Warn("Failed to close previous session", "session_id", r.current.ID, "err", err)
		}
		r.current = nil
	}

	session := domain.Session{
		ID:        r.newID(),
		Source:    source,
		StartedAt: r.now(),
	}
	if err := r.repo.CreateSession(ctx, session); err != nil {
		return err
	}

	r.current = &session
	r.logger.Info("Recording session started", "session_id", session.ID, "source", source)
	return nil
}

// StopSession closes the current session. Stopping with no open session is
// a no-op.
func (r *Recorder) StopSession(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}

	err := r.repo.CloseSession(ctx, r.current.ID, r.now())
	if err != nil {
		return err
	}

	r.logger.Info("Recording session closed", "session_id", r.current.ID)
	r.current = nil
	return nil
}

// Emit implements the vitals sink: each appended sample is persisted under
// the open session, if any.
func (r *Recorder) Emit(ctx context.Context, sample vitalsdomain.Sample) error {
	r.mu.Lock()
	session := r.current
	r.mu.Unlock()

	if session == nil {
		return nil
	}

	return r.repo.InsertSample(ctx, domain.StoredSample{
		SessionID:   session.ID,
		Timestamp:   sample.Timestamp,
		HeartRate:   sample.HeartRate,
		Temperature: sample.Temperature,
		Oxygen:      sample.Oxygen,
	})
}
