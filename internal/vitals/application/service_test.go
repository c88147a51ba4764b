package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitalink/internal/infrastructure/logger"
	"vitalink/internal/vitals/domain"
)

// mockSink records emitted samples and can be forced to fail.
type mockSink struct {
	samples []domain.Sample
	err     error
}

func (m *mockSink) Emit(ctx context.Context, sample domain.Sample) error {
	if m.err != nil {
		return m.err
	}
	m.samples = append(m.samples, sample)
	return nil
}

func newTestService(sink domain.Sink) *Service {
	s := NewService(logger.DefaultLogger(), sink)
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func TestService_IngestMergesLastKnownValues(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	first, ok := s.Ingest(ctx, "H:90,T:36.5,O:96")
	if !ok {
		t.Fatal("expected first payload to be ingested")
	}
	if first.HeartRate != 90 || first.Temperature != 36.5 || first.Oxygen != 96 {
		t.Fatalf("unexpected first sample: %+v", first)
	}

	second, ok := s.Ingest(ctx, "T:37.0")
	if !ok {
		t.Fatal("expected second payload to be ingested")
	}
	if second.HeartRate != 90 || second.Temperature != 37.0 || second.Oxygen != 96 {
		t.Errorf("expected carry-forward sample {90 37.0 96}, got %+v", second)
	}

	if s.window.Len() != 2 {
		t.Errorf("expected window length 2, got %d", s.window.Len())
	}
}

func TestService_IngestIgnoresUnrecognizedPayload(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	s.Ingest(ctx, "H:80,T:36.6,O:98")
	lengthBefore := len(s.Snapshot())

	_, ok := s.Ingest(ctx, "battery low")
	if ok {
		t.Error("expected unrecognized payload to be ignored")
	}

	if got := len(s.Snapshot()); got != lengthBefore {
		t.Errorf("expected window length unchanged at %d, got %d", lengthBefore, got)
	}

	current, _ := s.Current()
	if current.HeartRate != 80 {
		t.Errorf("expected current values unchanged, got %+v", current)
	}
}

func TestService_IngestTeesToSink(t *testing.T) {
	sink := &mockSink{}
	s := newTestService(sink)

	s.Ingest(context.Background(), "H:82,T:36.9,O:97")

	if len(sink.samples) != 1 {
		t.Fatalf("expected 1 recorded sample, got %d", len(sink.samples))
	}
	if sink.samples[0].HeartRate != 82 {
		t.Errorf("unexpected recorded sample: %+v", sink.samples[0])
	}
}

func TestService_SinkFailureDoesNotFailIngestion(t *testing.T) {
	sink := &mockSink{err: errors.New("disk full")}
	s := newTestService(sink)

	_, ok := s.Ingest(context.Background(), "H:82")
	if !ok {
		t.Error("expected ingestion to succeed despite sink failure")
	}
	if got := len(s.Snapshot()); got != 1 {
		t.Errorf("expected window length 1, got %d", got)
	}
}

func TestService_SubscribeReceivesSamples(t *testing.T) {
	s := newTestService(nil)

	ch, cancel := s.Subscribe()
	defer cancel()

	s.Ingest(context.Background(), "H:75,T:36.4,O:99")

	select {
	case sample := <-ch:
		if sample.HeartRate != 75 {
			t.Errorf("unexpected sample from subscription: %+v", sample)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscribed sample")
	}
}

func TestService_SlowSubscriberDoesNotBlockIngestion(t *testing.T) {
	s := newTestService(nil)

	_, cancel := s.Subscribe()
	defer cancel()

	// Never read from the subscription; ingest far past the buffer size.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			s.Ingest(context.Background(), "H:70")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ingestion blocked on a slow subscriber")
	}
}

func TestService_CancelSubscriptionTwice(t *testing.T) {
	s := newTestService(nil)

	_, cancel := s.Subscribe()
	cancel()
	cancel() // must not panic

	s.Ingest(context.Background(), "H:70")
}

func TestService_FirstSampleLogsEvent(t *testing.T) {
	s := newTestService(nil)
	ctx := context.Background()

	s.Ingest(ctx, "H:80,T:36.6,O:98")
	s.Ingest(ctx, "H:81")

	events := s.Events()
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(events))
	}
	if events[0].Message != "first sample received" {
		t.Errorf("unexpected event message %q", events[0].Message)
	}
}

func TestService_Events(t *testing.T) {
	s := newTestService(nil)

	for i := 0; i < 7; i++ {
		s.AddEvent("connected")
	}

	events := s.Events()
	if len(events) != domain.DefaultEventCapacity {
		t.Errorf("expected %d events, got %d", domain.DefaultEventCapacity, len(events))
	}
}
