// Package memory provides an in-process Store implementation. It is
// the reference implementation for tests and single-user setups; the
// postgres package provides the durable counterpart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

// Store keeps the whole graph in memory behind a single RWMutex.
// Writes are fully serialized, which enforces the uniqueness
// invariants without any further coordination.
type Store struct {
	mu            sync.RWMutex
	closed        bool
	people        map[string]*model.Person // id -> person
	emailIndex    map[string]string        // lowercased email -> id
	relationships map[string]*model.Relationship
	relOrder      []string                       // insertion-ordered relationship keys
	interactions  map[string][]*model.Interaction // person id -> append-only log
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		people:        make(map[string]*model.Person),
		emailIndex:    make(map[string]string),
		relationships: make(map[string]*model.Relationship),
		interactions:  make(map[string][]*model.Interaction),
	}
}

// ctxErr maps a context error onto the store error taxonomy.
func ctxErr(ctx context.Context, op, entity string) error {
	switch err := ctx.Err(); err {
	case nil:
		return nil
	case context.DeadlineExceeded:
		return store.TimeoutError(op, entity, err)
	default:
		return err
	}
}

func (s *Store) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	if err := ctxErr(ctx, "GetPerson", "person"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStoreClosed
	}
	p, ok := s.people[id]
	if !ok {
		return nil, store.PersonNotFoundError("GetPerson", id)
	}
	return p.Clone(), nil
}

func (s *Store) GetPersonByEmail(ctx context.Context, email string) (*model.Person, error) {
	if err := ctxErr(ctx, "GetPersonByEmail", "person"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStoreClosed
	}
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, store.PersonNotFoundError("GetPersonByEmail", email)
	}
	return s.people[id].Clone(), nil
}

func (s *Store) FindPeople(ctx context.Context, filter store.PersonFilter) ([]*model.Person, error) {
	if err := ctxErr(ctx, "FindPeople", "person"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStoreClosed
	}

	var idSet map[string]bool
	if len(filter.IDs) > 0 {
		idSet = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			idSet[id] = true
		}
	}
	var deptSet map[string]bool
	if len(filter.Departments) > 0 {
		deptSet = make(map[string]bool, len(filter.Departments))
		for _, d := range filter.Departments {
			deptSet[d] = true
		}
	}

	out := make([]*model.Person, 0)
	for _, p := range s.people {
		if idSet != nil && !idSet[p.ID] {
			continue
		}
		if deptSet != nil && !deptSet[p.Department] {
			continue
		}
		if filter.Expertise != "" && !p.HasExpertise(filter.Expertise) {
			continue
		}
		if !filter.LastInteractionSince.IsZero() && p.LastInteraction.Before(filter.LastInteractionSince) {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindRelationships(ctx context.Context, scope store.RelationshipScope) ([]*model.Relationship, error) {
	if err := ctxErr(ctx, "FindRelationships", "relationship"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStoreClosed
	}

	var inScope map[string]bool
	if len(scope.PersonIDs) > 0 {
		inScope = make(map[string]bool, len(scope.PersonIDs))
		for _, id := range scope.PersonIDs {
			inScope[id] = true
		}
	}

	out := make([]*model.Relationship, 0, len(s.relOrder))
	for _, key := range s.relOrder {
		r := s.relationships[key]
		if inScope != nil && (!inScope[r.FromID] || !inScope[r.ToID]) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out, nil
}

func (s *Store) FindInteractions(ctx context.Context, personID string, window model.Window) ([]*model.Interaction, error) {
	if err := ctxErr(ctx, "FindInteractions", "interaction"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStoreClosed
	}
	if _, ok := s.people[personID]; !ok {
		return nil, store.PersonNotFoundError("FindInteractions", personID)
	}

	out := make([]*model.Interaction, 0)
	for _, i := range s.interactions[personID] {
		if window.Contains(i.OccurredAt) {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) FindInteractionsSince(ctx context.Context, since time.Time) ([]*model.Interaction, error) {
	if err := ctxErr(ctx, "FindInteractionsSince", "interaction"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, store.ErrStoreClosed
	}

	out := make([]*model.Interaction, 0)
	for _, log := range s.interactions {
		for _, i := range log {
			if !i.OccurredAt.Before(since) {
				cp := *i
				out = append(out, &cp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreatePerson(ctx context.Context, p *model.Person) error {
	if err := ctxErr(ctx, "CreatePerson", "person"); err != nil {
		return err
	}
	if err := model.ValidatePerson(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrStoreClosed
	}
	if _, exists := s.people[p.ID]; exists {
		return store.ConflictError("CreatePerson", "person", "id "+p.ID+" already exists")
	}
	if p.Email != "" {
		if _, taken := s.emailIndex[strings.ToLower(p.Email)]; taken {
			return store.ConflictError("CreatePerson", "person", "email "+p.Email+" already in use")
		}
	}

	cp := p.Clone()
	cp.NormalizeExpertise()
	s.people[cp.ID] = cp
	if cp.Email != "" {
		s.emailIndex[strings.ToLower(cp.Email)] = cp.ID
	}
	// Reflect normalization back to the caller's copy.
	p.Expertise = append([]string(nil), cp.Expertise...)
	return nil
}

func (s *Store) CreateRelationship(ctx context.Context, r *model.Relationship) error {
	if err := ctxErr(ctx, "CreateRelationship", "relationship"); err != nil {
		return err
	}
	if err := model.ValidateRelationship(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrStoreClosed
	}
	if _, ok := s.people[r.FromID]; !ok {
		return store.PersonNotFoundError("CreateRelationship", r.FromID)
	}
	if _, ok := s.people[r.ToID]; !ok {
		return store.PersonNotFoundError("CreateRelationship", r.ToID)
	}
	key := r.Key()
	if _, dup := s.relationships[key]; dup {
		return store.ConflictError("CreateRelationship", "relationship",
			"duplicate "+r.FromID+"->"+r.ToID+" kind "+string(r.Kind))
	}

	cp := r.Clone()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.relationships[key] = cp
	s.relOrder = append(s.relOrder, key)
	return nil
}

func (s *Store) CreateInteraction(ctx context.Context, i *model.Interaction) error {
	if err := ctxErr(ctx, "CreateInteraction", "interaction"); err != nil {
		return err
	}
	if err := model.ValidateInteraction(i); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrStoreClosed
	}
	p, ok := s.people[i.PersonID]
	if !ok {
		return store.PersonNotFoundError("CreateInteraction", i.PersonID)
	}

	cp := *i
	cp.Participants = append([]string(nil), i.Participants...)
	s.interactions[i.PersonID] = append(s.interactions[i.PersonID], &cp)
	if cp.OccurredAt.After(p.LastInteraction) {
		p.LastInteraction = cp.OccurredAt
	}
	return nil
}

// Close marks the store closed; subsequent calls fail with
// ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
