package domain

import "context"

// Source is a producer of decoded text payloads. Run blocks, pushing
// payloads into the ingestion path until the context is cancelled or the
// source terminates on its own (e.g. a hardware disconnect). At most one
// source is active at a time; the manager enforces mutual exclusion.
type Source interface {
	Name() string
	Run(ctx context.Context) error
}
