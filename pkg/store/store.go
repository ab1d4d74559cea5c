// Package store defines the persistence contract the analysis engine
// consumes. The engine treats the store as an opaque typed adapter: it
// never assumes a query language, and all analysis components read
// through this interface only.
package store

import (
	"context"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

// PersonFilter restricts FindPeople. Zero-value fields are ignored;
// set fields combine with AND.
type PersonFilter struct {
	// IDs restricts to an explicit person-id set.
	IDs []string
	// Departments restricts to persons in any of the listed departments.
	Departments []string
	// Expertise restricts to persons with a matching expertise tag
	// (case-insensitive substring).
	Expertise string
	// LastInteractionSince restricts to persons whose last interaction
	// is at or after the given instant.
	LastInteractionSince time.Time
}

// RelationshipScope restricts FindRelationships to edges whose two
// endpoints are both in PersonIDs. An empty set means all edges.
type RelationshipScope struct {
	PersonIDs []string
}

// Store is the durable graph store contract.
//
// Implementations own all mutation of durable state and must serialize
// writes that could violate uniqueness invariants (duplicate email,
// duplicate relationship triple). Reads are bounded by the context
// deadline; implementations surface expiry as ErrTimeout.
type Store interface {
	GetPerson(ctx context.Context, id string) (*model.Person, error)
	GetPersonByEmail(ctx context.Context, email string) (*model.Person, error)
	FindPeople(ctx context.Context, filter PersonFilter) ([]*model.Person, error)
	FindRelationships(ctx context.Context, scope RelationshipScope) ([]*model.Relationship, error)
	FindInteractions(ctx context.Context, personID string, window model.Window) ([]*model.Interaction, error)
	FindInteractionsSince(ctx context.Context, since time.Time) ([]*model.Interaction, error)

	CreatePerson(ctx context.Context, p *model.Person) error
	CreateRelationship(ctx context.Context, r *model.Relationship) error
	CreateInteraction(ctx context.Context, i *model.Interaction) error

	Close() error
}
