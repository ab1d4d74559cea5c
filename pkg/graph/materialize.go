package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/logging"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

// Scope restricts which part of the stored graph is materialized.
// Zero-value fields apply no restriction; set fields combine with AND.
type Scope struct {
	// Departments restricts to persons in any listed department.
	Departments []string
	// PersonIDs restricts to an explicit person-id set.
	PersonIDs []string
	// ActiveSince restricts to persons whose last interaction is at or
	// after the given instant.
	ActiveSince time.Time
}

// IsZero reports whether the scope applies no restriction at all.
func (s Scope) IsZero() bool {
	return len(s.Departments) == 0 && len(s.PersonIDs) == 0 && s.ActiveSince.IsZero()
}

// String renders the scope for error messages and logs.
func (s Scope) String() string {
	if s.IsZero() {
		return "all"
	}
	out := ""
	if len(s.Departments) > 0 {
		out += fmt.Sprintf("departments=%v ", s.Departments)
	}
	if len(s.PersonIDs) > 0 {
		out += fmt.Sprintf("persons=%d ", len(s.PersonIDs))
	}
	if !s.ActiveSince.IsZero() {
		out += fmt.Sprintf("active_since=%s ", s.ActiveSince.Format(time.RFC3339))
	}
	return out[:len(out)-1]
}

// ScopeEmptyError reports that no persons matched the requested scope.
// Callers degrade to an empty report rather than failing.
type ScopeEmptyError struct {
	Scope Scope
}

func (e *ScopeEmptyError) Error() string {
	return fmt.Sprintf("no persons match scope (%s)", e.Scope)
}

// timeoutRetryBackoff is the pause before the single retry after a
// store read timeout.
const timeoutRetryBackoff = 250 * time.Millisecond

// Materializer builds Graph snapshots from a backing store.
type Materializer struct {
	store  store.Store
	logger logging.Logger
}

// NewMaterializer wires a materializer to its store. A nil logger
// falls back to a no-op logger.
func NewMaterializer(st store.Store, logger logging.Logger) *Materializer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Materializer{store: st, logger: logger.With(logging.Component("materializer"))}
}

// Materialize pulls the scoped subgraph and builds an immutable
// snapshot: all matching persons plus every relationship with both
// endpoints in scope. Pure read; the caller owns the result.
//
// A store timeout is retried once after a short backoff before being
// surfaced.
func (m *Materializer) Materialize(ctx context.Context, scope Scope) (*Graph, error) {
	started := time.Now()

	people, err := m.findPeople(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, &ScopeEmptyError{Scope: scope}
	}

	ids := make([]string, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}
	relationships, err := retryOnTimeout(ctx, m.logger, func(ctx context.Context) ([]*model.Relationship, error) {
		return m.store.FindRelationships(ctx, store.RelationshipScope{PersonIDs: ids})
	})
	if err != nil {
		return nil, err
	}

	g := New(people, relationships)
	m.logger.Debug("graph materialized",
		logging.Scope(scope.String()),
		logging.Int("nodes", g.Order()),
		logging.Int("arcs", g.SizeArcs()),
		logging.Latency(time.Since(started)),
	)
	return g, nil
}

func (m *Materializer) findPeople(ctx context.Context, scope Scope) ([]*model.Person, error) {
	filter := store.PersonFilter{
		IDs:                  scope.PersonIDs,
		Departments:          scope.Departments,
		LastInteractionSince: scope.ActiveSince,
	}
	return retryOnTimeout(ctx, m.logger, func(ctx context.Context) ([]*model.Person, error) {
		return m.store.FindPeople(ctx, filter)
	})
}

// retryOnTimeout runs fn, retrying exactly once after a backoff when
// the store reports a query timeout.
func retryOnTimeout[T any](ctx context.Context, logger logging.Logger, fn func(context.Context) (T, error)) (T, error) {
	out, err := fn(ctx)
	if err == nil || !store.IsTimeout(err) {
		return out, err
	}

	logger.Warn("store query timed out, retrying once", logging.Error(err))
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-time.After(timeoutRetryBackoff):
	}
	return fn(ctx)
}
