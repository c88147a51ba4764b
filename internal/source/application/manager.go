package application

import (
	"context"
	"errors"
	"sync"
	"time"

	sharedlogger "vitalink/internal/shared/logger"
	"vitalink/internal/source/domain"
)

// Factory builds a source, performing any synchronous setup (for hardware,
// the full pairing sequence). Setup errors abort the start attempt and
// surface to the caller.
type Factory func(ctx context.Context) (domain.Source, error)

// SessionRecorder is notified around source lifetimes so recorded samples
// group into sessions. May be backed by a no-op when recording is disabled.
type SessionRecorder interface {
	StartSession(ctx context.Context, source string) error
	StopSession(ctx context.Context) error
}

// EventSink receives human-readable entries for the session event log.
type EventSink interface {
	AddEvent(message string)
}

// Status describes the currently active source, if any.
type Status struct {
	Active bool
	Source string
	Since  time.Time
}

type sourceInstance struct {
	source domain.Source
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	since  time.Time
}

// Manager owns source lifecycle and enforces that at most one source is
// active at a time: starting demo mode supersedes any hardware session and
// vice versa, at the state-transition level rather than by protocol.
type Manager struct {
	logger   sharedlogger.Logger
	events   EventSink
	recorder SessionRecorder // may be nil
	demo     Factory
	hardware Factory

	// lifecycleMu serializes start/stop transitions end to end; mu guards
	// only the active pointer so the run goroutine can clear it without
	// deadlocking a waiter.
	lifecycleMu sync.Mutex
	mu          sync.Mutex
	active      *sourceInstance
}

// NewManager creates a source manager. recorder may be nil.
func NewManager(logger sharedlogger.Logger, events EventSink, recorder SessionRecorder, demo, hardware Factory) *Manager {
	return &Manager{
		logger:   logger,
		events:   events,
		recorder: recorder,
		demo:     demo,
		hardware: hardware,
	}
}

// StartDemo starts the demo generator, stopping any active source first.
func (m *Manager) StartDemo(ctx context.Context) error {
	return m.start(ctx, m.demo)
}

// Connect starts a hardware session, stopping any active source first.
// Pairing failures abort the attempt and leave the manager idle.
func (m *Manager) Connect(ctx context.Context) error {
	return m.start(ctx, m.hardware)
}

// Stop stops whatever source is active. Stopping an idle manager is a
// no-op.
func (m *Manager) Stop(ctx context.Context) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()
	return m.stopActive(ctx)
}

// Status reports the active source.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Status{}
	}
	return Status{
		Active: true,
		Source: m.active.source.Name(),
		Since:  m.active.since,
	}
}

func (m *Manager) start(ctx context.Context, factory Factory) error {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	if err := m.stopActive(ctx); err != nil {
		return err
	}

	source, err := factory(ctx)
	if err != nil {
		m.logger.Error("Failed to start source", "err", err)
		m.events.AddEvent("start failed: " + err.Error())
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	inst := &sourceInstance{
		source: source,
		ctx:    runCtx,
		cancel: cancel,
		done:   make(chan struct{}),
		since:  time.Now(),
	}

	m.mu.Lock()
	m.active = inst
	m.mu.Unlock()

	if m.recorder != nil {
		if err := m.recorder.StartSession(ctx, source.Name()); err != nil {
			m.logger.Warn("Failed to start recording session", "err", err)
		}
	}

	m.logger.Info("Source started", "source", source.Name())
	m.events.AddEvent("source started: " + source.Name())

	go m.run(inst)
	return nil
}

func (m *Manager) run(inst *sourceInstance) {
	err := inst.source.Run(inst.ctx)
	close(inst.done)

	m.mu.Lock()
	if m.active == inst {
		m.active = nil
	}
	m.mu.Unlock()

	if m.recorder != nil {
		if stopErr := m.recorder.StopSession(context.Background()); stopErr != nil {
			m.logger.Warn("Failed to close recording session", "err", stopErr)
		}
	}

	name := inst.source.Name()
	if err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn("Source terminated", "source", name, "err", err)
		m.events.AddEvent("source stopped: " + name + ": " + err.Error())
		return
	}
	m.logger.Info("Source stopped", "source", name)
	m.events.AddEvent("source stopped: " + name)
}

func (m *Manager) stopActive(ctx context.Context) error {
	m.mu.Lock()
	inst := m.active
	m.mu.Unlock()

	if inst == nil {
		return nil
	}

	inst.cancel()
	select {
	case <-inst.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
