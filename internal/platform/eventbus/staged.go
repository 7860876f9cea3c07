// Package eventbus sequences event publication against transaction
// boundaries. Services publish events for state they are mutating, but
// subscribers must never observe an event for state that was not durably
// committed: a failed commit suppresses every event staged during it.
package eventbus

import (
	"context"
	"sync"

	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

// Staged buffers events during a mutation and releases them to the sink
// only when Flush is called. Create a new instance per operation.
type Staged struct {
	sink    events.Publisher
	mu      sync.Mutex
	pending []events.Event
}

// NewStaged creates a Staged publisher delivering to sink on Flush.
func NewStaged(sink events.Publisher) *Staged {
	return &Staged{sink: sink}
}

// Publish buffers events for later delivery.
// Implements events.Publisher.
func (s *Staged) Publish(ctx context.Context, evts ...events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, evts...)
	return nil
}

// Flush delivers all buffered events to the sink, in publish order.
func (s *Staged) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	return s.sink.Publish(ctx, pending...)
}

// PendingCount returns the number of buffered events (useful for testing).
func (s *Staged) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Compile-time interface check.
var _ events.Publisher = (*Staged)(nil)

// AfterCommit runs fn within scope. Events that fn publishes through the
// provided publisher are delivered to sink only after the transaction has
// committed; if fn fails or the commit fails, nothing is delivered.
//
// Sink delivery errors are intentionally not surfaced: by the time events
// flow the state is committed, and notification delivery is fire-and-forget.
func AfterCommit(
	ctx context.Context,
	scope transaction.Scope,
	sink events.Publisher,
	fn func(ctx context.Context, publisher events.Publisher) error,
) error {
	staged := NewStaged(sink)

	if err := scope.Execute(ctx, func(ctx context.Context) error {
		return fn(ctx, staged)
	}); err != nil {
		return err
	}

	_ = staged.Flush(ctx)
	return nil
}

// AfterCommitWithResult is the value-returning variant of AfterCommit.
func AfterCommitWithResult[T any](
	ctx context.Context,
	scope transaction.Scope,
	sink events.Publisher,
	fn func(ctx context.Context, publisher events.Publisher) (T, error),
) (T, error) {
	staged := NewStaged(sink)

	result, err := transaction.ExecuteWithResult(ctx, scope, func(ctx context.Context) (T, error) {
		return fn(ctx, staged)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	_ = staged.Flush(ctx)
	return result, nil
}
