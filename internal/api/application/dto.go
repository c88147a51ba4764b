package application

import (
	"time"

	recordingdomain "vitalink/internal/recording/domain"
	sourceapp "vitalink/internal/source/application"
	vitalsdomain "vitalink/internal/vitals/domain"
)

// SampleResponse represents a live sample in API responses. Time is the
// display-formatted HH:MM:SS timestamp the chart surfaces render.
type SampleResponse struct {
	Time        string  `json:"time"`
	HeartRate   int     `json:"heart_rate"`
	Temperature float64 `json:"temperature"`
	Oxygen      int     `json:"oxygen"`
}

// EventResponse represents one event log entry in API responses
type EventResponse struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// SourceStatusResponse represents the active source in API responses
type SourceStatusResponse struct {
	Active bool       `json:"active"`
	Source string     `json:"source,omitempty"`
	Since  *time.Time `json:"since,omitempty"`
}

// SessionResponse represents a recorded session in API responses
type SessionResponse struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// RecordedSampleResponse represents a persisted sample in API responses.
// Unlike the live surfaces it carries the full timestamp.
type RecordedSampleResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	HeartRate   int       `json:"heart_rate"`
	Temperature float64   `json:"temperature"`
	Oxygen      int       `json:"oxygen"`
}

// LiveFrame is one message on the live WebSocket stream: a full window on
// connect, then one sample per append.
type LiveFrame struct {
	Type    string           `json:"type"` // "window" or "sample"
	Samples []SampleResponse `json:"samples,omitempty"`
	Sample  *SampleResponse  `json:"sample,omitempty"`
}

// ListSamplesRequest represents query parameters for listing recorded samples
type ListSamplesRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ErrorResponse represents an error in API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToSampleResponse converts a domain sample to an API response
func ToSampleResponse(s vitalsdomain.Sample) SampleResponse {
	return SampleResponse{
		Time:        s.DisplayTime(),
		HeartRate:   s.HeartRate,
		Temperature: s.Temperature,
		Oxygen:      s.Oxygen,
	}
}

// ToEventResponse converts a domain event to an API response
func ToEventResponse(e vitalsdomain.Event) EventResponse {
	return EventResponse{
		Time:    e.Timestamp.Format("15:04:05"),
		Message: e.Message,
	}
}

// ToSourceStatusResponse converts a manager status to an API response
func ToSourceStatusResponse(s sourceapp.Status) SourceStatusResponse {
	resp := SourceStatusResponse{
		Active: s.Active,
		Source: s.Source,
	}
	if s.Active {
		since := s.Since
		resp.Since = &since
	}
	return resp
}

// ToSessionResponse converts a domain session to an API response
func ToSessionResponse(s recordingdomain.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Source:    s.Source,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
}

// ToRecordedSampleResponse converts a stored sample to an API response
func ToRecordedSampleResponse(s recordingdomain.StoredSample) RecordedSampleResponse {
	return RecordedSampleResponse{
		Timestamp:   s.Timestamp,
		HeartRate:   s.HeartRate,
		Temperature: s.Temperature,
		Oxygen:      s.Oxygen,
	}
}
