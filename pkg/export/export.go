// Package export serializes network snapshots for interchange:
// privacy-filtered JSON, snappy-compressed archives and a contacts
// CSV.
package export

import (
	"context"
	"sort"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

// FormatVersion is bumped whenever the payload shape changes in a way
// readers must know about.
const FormatVersion = 1

// Options controls what personal detail leaves the system. Everything
// defaults to excluded; callers opt in.
type Options struct {
	IncludeNotes   bool
	IncludeContact bool
	Scope          store.PersonFilter
}

// Payload is the interchange document.
type Payload struct {
	Version       int                   `json:"version"`
	ExportedAt    time.Time             `json:"exported_at"`
	People        []*model.Person       `json:"people"`
	Relationships []*model.Relationship `json:"relationships"`
}

// BuildPayload reads every person matching the scope plus the
// relationships among them and applies the privacy filter. Output
// ordering is fixed: people by ID, relationships by from, to, kind.
func BuildPayload(ctx context.Context, st store.Store, opts Options) (*Payload, error) {
	people, err := st.FindPeople(ctx, opts.Scope)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(people))
	for _, p := range people {
		ids = append(ids, p.ID)
	}
	rels, err := st.FindRelationships(ctx, store.RelationshipScope{PersonIDs: ids})
	if err != nil {
		return nil, err
	}

	payload := &Payload{
		Version:       FormatVersion,
		ExportedAt:    time.Now().UTC(),
		People:        make([]*model.Person, 0, len(people)),
		Relationships: make([]*model.Relationship, 0, len(rels)),
	}
	for _, p := range people {
		payload.People = append(payload.People, filterPerson(p, opts))
	}
	for _, r := range rels {
		payload.Relationships = append(payload.Relationships, r.Clone())
	}
	sort.Slice(payload.People, func(i, j int) bool {
		return payload.People[i].ID < payload.People[j].ID
	})
	sort.Slice(payload.Relationships, func(i, j int) bool {
		a, b := payload.Relationships[i], payload.Relationships[j]
		if a.FromID != b.FromID {
			return a.FromID < b.FromID
		}
		if a.ToID != b.ToID {
			return a.ToID < b.ToID
		}
		return a.Kind < b.Kind
	})
	return payload, nil
}

// filterPerson strips fields the options exclude. The stored person is
// never mutated.
func filterPerson(p *model.Person, opts Options) *model.Person {
	out := p.Clone()
	if !opts.IncludeNotes {
		out.Notes = ""
	}
	if !opts.IncludeContact {
		out.Email = ""
		out.Location = ""
		out.CommPreference = ""
	}
	return out
}

// Import writes a payload's people and relationships into a store.
// Conflicts with existing records abort the import so a partial load
// never masquerades as a full one; load into an empty store.
func Import(ctx context.Context, st store.Store, payload *Payload) error {
	for _, p := range payload.People {
		if err := st.CreatePerson(ctx, p); err != nil {
			return err
		}
	}
	for _, r := range payload.Relationships {
		if err := st.CreateRelationship(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
