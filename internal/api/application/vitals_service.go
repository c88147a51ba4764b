package application

import (
	vitalsdomain "vitalink/internal/vitals/domain"
)

// VitalsProvider is the slice of the vitals service the API reads from.
type VitalsProvider interface {
	Current() (vitalsdomain.Sample, bool)
	Snapshot() []vitalsdomain.Sample
	Events() []vitalsdomain.Event
	Subscribe() (<-chan vitalsdomain.Sample, func())
}

// VitalsService handles live vitals queries
type VitalsService struct {
	provider VitalsProvider
}

// NewVitalsService creates a new vitals query service
func NewVitalsService(provider VitalsProvider) *VitalsService {
	return &VitalsService{
		provider: provider,
	}
}

// Current returns the instantaneous values, if any sample has been ingested
func (s *VitalsService) Current() (SampleResponse, bool) {
	sample, ok := s.provider.Current()
	if !ok {
		return SampleResponse{}, false
	}
	return ToSampleResponse(sample), true
}

// Window returns the full rolling window, oldest first
func (s *VitalsService) Window() []SampleResponse {
	samples := s.provider.Snapshot()
	responses := make([]SampleResponse, len(samples))
	for i, sample := range samples {
		responses[i] = ToSampleResponse(sample)
	}
	return responses
}

// Events returns the retained event log entries, oldest first
func (s *VitalsService) Events() []EventResponse {
	events := s.provider.Events()
	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = ToEventResponse(e)
	}
	return responses
}

// Subscribe registers a live sample subscription on the underlying service
func (s *VitalsService) Subscribe() (<-chan vitalsdomain.Sample, func()) {
	return s.provider.Subscribe()
}
