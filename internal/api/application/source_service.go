package application

import (
	"context"

	sourceapp "vitalink/internal/source/application"
)

// SourceController is the slice of the source manager the API drives.
type SourceController interface {
	StartDemo(ctx context.Context) error
	Connect(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() sourceapp.Status
}

// SourceService handles source lifecycle actions
type SourceService struct {
	controller SourceController
}

// NewSourceService creates a new source action service
func NewSourceService(controller SourceController) *SourceService {
	return &SourceService{
		controller: controller,
	}
}

// Status reports the active source
func (s *SourceService) Status() SourceStatusResponse {
	return ToSourceStatusResponse(s.controller.Status())
}

// StartDemo starts demo mode, superseding any hardware session
func (s *SourceService) StartDemo(ctx context.Context) error {
	return s.controller.StartDemo(ctx)
}

// Connect starts a hardware session, superseding demo mode
func (s *SourceService) Connect(ctx context.Context) error {
	return s.controller.Connect(ctx)
}

// Stop stops whatever source is active
func (s *SourceService) Stop(ctx context.Context) error {
	return s.controller.Stop(ctx)
}
