package domain

import "context"

// Sink defines the interface for tee-ing ingested samples to a secondary
// consumer (e.g. the session recorder). Emit failures never fail ingestion.
type Sink interface {
	Emit(ctx context.Context, sample Sample) error
}
