package application

import (
	"context"
	"sync"
	"time"

	sharedlogger "vitalink/internal/shared/logger"
	"vitalink/internal/vitals/domain"
)

// subscriberBuffer bounds the per-subscriber fan-out queue. A subscriber
// that falls behind drops samples rather than blocking ingestion.
const subscriberBuffer = 16

// Service owns the live vitals state: the rolling window, the last known
// values used for carry-forward, the session event log, and the subscriber
// fan-out feeding live streams. All mutation happens under one mutex since
// two asynchronous producers exist (hardware notifications and the demo
// ticker), even though the source manager keeps them mutually exclusive.
type Service struct {
	logger sharedlogger.Logger
	sink   domain.Sink // optional tee, may be nil

	mu      sync.Mutex
	window  *domain.Window
	events  *domain.EventLog
	last    domain.Sample
	hasLast bool
	subs    map[int]chan domain.Sample
	nextSub int

	now func() time.Time
}

// NewService creates a vitals service. sink may be nil when session
// recording is disabled.
func NewService(logger sharedlogger.Logger, sink domain.Sink) *Service {
	return &Service{
		logger: logger,
		sink:   sink,
		window: domain.NewWindow(domain.DefaultWindowCapacity),
		events: domain.NewEventLog(domain.DefaultEventCapacity),
		subs:   make(map[int]chan domain.Sample),
		now:    time.Now,
	}
}

// Ingest processes one decoded text payload. Unrecognized payloads are
// ignored with no observable effect. Fields absent from the payload carry
// the previous sample's values forward. The returned bool reports whether a
// sample was appended.
func (s *Service) Ingest(ctx context.Context, payload string) (domain.Sample, bool) {
	reading, ok := domain.ParsePayload(payload)
	if !ok {
		s.logger.Debug("Ignoring payload with no recognized field", "payload", payload)
		return domain.Sample{}, false
	}

	s.mu.Lock()
	sample := reading.Apply(s.last, s.now())
	if !s.hasLast {
		s.events.Add(sample.Timestamp, "first sample received")
	}
	s.last = sample
	s.hasLast = true
	s.window.Append(sample)
	subs := make([]chan domain.Sample, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	if s.sink != nil {
		if err := s.sink.Emit(ctx, sample); err != nil {
			s.logger.Warn("Failed to record sample", "err", err)
		}
	}

	for _, ch := range subs {
		select {
		case ch <- sample:
		default:
			s.logger.Debug("Dropped sample for slow subscriber")
		}
	}

	return sample, true
}

// Current returns the last ingested sample, if any.
func (s *Service) Current() (domain.Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// Snapshot returns the full ordered window for chart rendering.
func (s *Service) Snapshot() []domain.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Samples()
}

// Events returns the retained event log entries, oldest first.
func (s *Service) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Tail()
}

// AddEvent appends a timestamped entry to the session event log.
func (s *Service) AddEvent(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.Add(s.now(), message)
}

// Subscribe registers a fan-out channel receiving every appended sample.
// The returned cancel function unregisters and closes the channel; it is
// safe to call more than once.
func (s *Service) Subscribe() (<-chan domain.Sample, func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.Sample, subscriberBuffer)
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
