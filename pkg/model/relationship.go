package model

import (
	"fmt"
	"time"
)

// RelationshipKind is the closed set of professional relationship types.
type RelationshipKind string

const (
	KindManager      RelationshipKind = "manager"
	KindDirectReport RelationshipKind = "direct_report"
	KindColleague    RelationshipKind = "colleague"
	KindCollaborator RelationshipKind = "collaborator"
	KindMentor       RelationshipKind = "mentor"
	KindMentee       RelationshipKind = "mentee"
	KindStakeholder  RelationshipKind = "stakeholder"
	KindVendor       RelationshipKind = "vendor"
	KindClient       RelationshipKind = "client"
)

// RelationshipKinds lists every valid kind in a stable order.
var RelationshipKinds = []RelationshipKind{
	KindManager, KindDirectReport, KindColleague, KindCollaborator,
	KindMentor, KindMentee, KindStakeholder, KindVendor, KindClient,
}

// IsValid reports whether the kind is part of the closed enumeration.
func (k RelationshipKind) IsValid() bool {
	for _, v := range RelationshipKinds {
		if k == v {
			return true
		}
	}
	return false
}

// IsHierarchical reports whether the kind encodes a reporting line.
func (k RelationshipKind) IsHierarchical() bool {
	return k == KindManager || k == KindDirectReport
}

// ParseRelationshipKind converts a string into a RelationshipKind.
func ParseRelationshipKind(s string) (RelationshipKind, error) {
	k := RelationshipKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown relationship kind %q", s)
	}
	return k, nil
}

// Relationship is a directed, typed edge between two persons.
//
// At most one relationship may exist per (FromID, ToID, Kind) triple and
// a person cannot relate to themselves; the store rejects violations at
// write time. When Bidirectional is true the edge is stored once but is
// symmetric for traversal.
type Relationship struct {
	FromID        string           `json:"from_id" validate:"required"`
	ToID          string           `json:"to_id" validate:"required"`
	Kind          RelationshipKind `json:"kind" validate:"required"`
	Bidirectional bool             `json:"bidirectional"`
	Strength      *float64         `json:"strength,omitempty" validate:"omitempty,gte=0,lte=1"`
	Context       string           `json:"context,omitempty" validate:"max=500"`
	Frequency     string           `json:"frequency,omitempty" validate:"max=100"`
	CreatedAt     time.Time        `json:"created_at"`
}

// DefaultEdgeWeight is the weight assumed for relationships without an
// explicit strength score.
const DefaultEdgeWeight = 1.0

// EffectiveWeight returns the edge weight used by the analysis engine:
// the strength score when present, DefaultEdgeWeight otherwise.
func (r *Relationship) EffectiveWeight() float64 {
	if r.Strength != nil {
		return *r.Strength
	}
	return DefaultEdgeWeight
}

// Key identifies the relationship by its uniqueness triple.
func (r *Relationship) Key() string {
	return r.FromID + "\x00" + r.ToID + "\x00" + string(r.Kind)
}

// Clone returns a deep copy of the relationship.
func (r *Relationship) Clone() *Relationship {
	clone := *r
	if r.Strength != nil {
		s := *r.Strength
		clone.Strength = &s
	}
	return &clone
}
