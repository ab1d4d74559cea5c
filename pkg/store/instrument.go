package store

import (
	"context"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/metrics"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

// instrumentedStore wraps a Store and records operation counts and
// latency into a metrics registry.
type instrumentedStore struct {
	inner Store
	reg   *metrics.Registry
}

// Instrument wraps a store with Prometheus instrumentation. A nil
// registry uses the process-wide default.
func Instrument(inner Store, reg *metrics.Registry) Store {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &instrumentedStore{inner: inner, reg: reg}
}

func (s *instrumentedStore) record(op string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.reg.RecordStoreOperation(op, status, time.Since(started))
}

func (s *instrumentedStore) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	started := time.Now()
	p, err := s.inner.GetPerson(ctx, id)
	s.record("get_person", started, err)
	return p, err
}

func (s *instrumentedStore) GetPersonByEmail(ctx context.Context, email string) (*model.Person, error) {
	started := time.Now()
	p, err := s.inner.GetPersonByEmail(ctx, email)
	s.record("get_person_by_email", started, err)
	return p, err
}

func (s *instrumentedStore) FindPeople(ctx context.Context, filter PersonFilter) ([]*model.Person, error) {
	started := time.Now()
	people, err := s.inner.FindPeople(ctx, filter)
	s.record("find_people", started, err)
	return people, err
}

func (s *instrumentedStore) FindRelationships(ctx context.Context, scope RelationshipScope) ([]*model.Relationship, error) {
	started := time.Now()
	rels, err := s.inner.FindRelationships(ctx, scope)
	s.record("find_relationships", started, err)
	return rels, err
}

func (s *instrumentedStore) FindInteractions(ctx context.Context, personID string, window model.Window) ([]*model.Interaction, error) {
	started := time.Now()
	interactions, err := s.inner.FindInteractions(ctx, personID, window)
	s.record("find_interactions", started, err)
	return interactions, err
}

func (s *instrumentedStore) FindInteractionsSince(ctx context.Context, since time.Time) ([]*model.Interaction, error) {
	started := time.Now()
	interactions, err := s.inner.FindInteractionsSince(ctx, since)
	s.record("find_interactions_since", started, err)
	return interactions, err
}

func (s *instrumentedStore) CreatePerson(ctx context.Context, p *model.Person) error {
	started := time.Now()
	err := s.inner.CreatePerson(ctx, p)
	s.record("create_person", started, err)
	return err
}

func (s *instrumentedStore) CreateRelationship(ctx context.Context, r *model.Relationship) error {
	started := time.Now()
	err := s.inner.CreateRelationship(ctx, r)
	s.record("create_relationship", started, err)
	return err
}

func (s *instrumentedStore) CreateInteraction(ctx context.Context, ia *model.Interaction) error {
	started := time.Now()
	err := s.inner.CreateInteraction(ctx, ia)
	s.record("create_interaction", started, err)
	return err
}

func (s *instrumentedStore) Close() error {
	return s.inner.Close()
}
