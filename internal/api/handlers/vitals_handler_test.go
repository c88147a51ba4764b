package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "vitalink/internal/api/application"
	vitalsdomain "vitalink/internal/vitals/domain"
)

// mockVitalsProvider implements api.VitalsProvider for handler tests
type mockVitalsProvider struct {
	current    vitalsdomain.Sample
	hasCurrent bool
	window     []vitalsdomain.Sample
	events     []vitalsdomain.Event
}

func (m *mockVitalsProvider) Current() (vitalsdomain.Sample, bool) {
	return m.current, m.hasCurrent
}

func (m *mockVitalsProvider) Snapshot() []vitalsdomain.Sample {
	return m.window
}

func (m *mockVitalsProvider) Events() []vitalsdomain.Event {
	return m.events
}

func (m *mockVitalsProvider) Subscribe() (<-chan vitalsdomain.Sample, func()) {
	ch := make(chan vitalsdomain.Sample)
	return ch, func() {}
}

func testSample(hour, min, sec int) vitalsdomain.Sample {
	return vitalsdomain.Sample{
		Timestamp:   time.Date(2026, 3, 14, hour, min, sec, 0, time.UTC),
		HeartRate:   82,
		Temperature: 36.9,
		Oxygen:      97,
	}
}

func TestVitalsHandler_GetCurrent(t *testing.T) {
	provider := &mockVitalsProvider{
		current:    testSample(12, 30, 45),
		hasCurrent: true,
	}
	handler := NewVitalsHandler(api.NewVitalsService(provider))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vitals", nil)
	w := httptest.NewRecorder()

	handler.GetCurrent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp api.SampleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Time != "12:30:45" {
		t.Errorf("expected display time 12:30:45, got %q", resp.Time)
	}
	if resp.HeartRate != 82 || resp.Temperature != 36.9 || resp.Oxygen != 97 {
		t.Errorf("unexpected sample values: %+v", resp)
	}
}

func TestVitalsHandler_GetCurrent_NoSamples(t *testing.T) {
	handler := NewVitalsHandler(api.NewVitalsService(&mockVitalsProvider{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vitals", nil)
	w := httptest.NewRecorder()

	handler.GetCurrent(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var resp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestVitalsHandler_GetWindow(t *testing.T) {
	provider := &mockVitalsProvider{
		window: []vitalsdomain.Sample{
			testSample(12, 30, 44),
			testSample(12, 30, 45),
		},
	}
	handler := NewVitalsHandler(api.NewVitalsService(provider))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vitals/window", nil)
	w := httptest.NewRecorder()

	handler.GetWindow(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp []api.SampleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(resp))
	}
	if resp[0].Time != "12:30:44" || resp[1].Time != "12:30:45" {
		t.Errorf("expected oldest-first ordering, got %q then %q", resp[0].Time, resp[1].Time)
	}
}

func TestVitalsHandler_GetWindow_Empty(t *testing.T) {
	handler := NewVitalsHandler(api.NewVitalsService(&mockVitalsProvider{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vitals/window", nil)
	w := httptest.NewRecorder()

	handler.GetWindow(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestVitalsHandler_ListEvents(t *testing.T) {
	provider := &mockVitalsProvider{
		events: []vitalsdomain.Event{
			{Timestamp: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), Message: "source started: demo"},
			{Timestamp: time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC), Message: "source stopped: demo"},
		},
	}
	handler := NewVitalsHandler(api.NewVitalsService(provider))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	w := httptest.NewRecorder()

	handler.ListEvents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp []api.EventResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp))
	}
	if resp[0].Message != "source started: demo" || resp[0].Time != "12:00:00" {
		t.Errorf("unexpected first event: %+v", resp[0])
	}
}
