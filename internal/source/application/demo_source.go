package application

import (
	"context"
	"time"

	sharedlogger "vitalink/internal/shared/logger"
	"vitalink/internal/source/domain"
	vitalsdomain "vitalink/internal/vitals/domain"
)

// DefaultDemoInterval is the tick period of the demo generator.
const DefaultDemoInterval = time.Second

// Ingestor is the slice of the vitals service a source pushes payloads into.
type Ingestor interface {
	Ingest(ctx context.Context, payload string) (vitalsdomain.Sample, bool)
}

// DemoSource synthesizes plausible physiological data on a fixed interval
// and feeds it through the same ingestion path as hardware notifications.
type DemoSource struct {
	logger   sharedlogger.Logger
	ingestor Ingestor
	interval time.Duration
	walk     *domain.DemoWalk
}

// NewDemoSource creates a demo source. A non-positive interval falls back
// to DefaultDemoInterval.
func NewDemoSource(logger sharedlogger.Logger, ingestor Ingestor, interval time.Duration) *DemoSource {
	if interval <= 0 {
		interval = DefaultDemoInterval
	}
	return &DemoSource{
		logger:   logger,
		ingestor: ingestor,
		interval: interval,
		walk:     domain.NewDemoWalk(time.Now().UnixNano()),
	}
}

// Name implements domain.Source.
func (s *DemoSource) Name() string {
	return "demo"
}

// Run ticks until the context is cancelled.
func (s *DemoSource) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("Demo source started", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			payload := s.walk.Next()
			if _, ok := s.ingestor.Ingest(ctx, payload); !ok {
				s.logger.Warn("Demo payload was not ingested", "payload", payload)
			}
		case <-ctx.Done():
			s.logger.Debug("Demo source stopped")
			return ctx.Err()
		}
	}
}
