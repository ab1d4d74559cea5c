package model

import (
	"time"

	"github.com/google/uuid"
)

// InteractionKind is the closed set of logged interaction types.
type InteractionKind string

const (
	InteractionMeeting       InteractionKind = "meeting"
	InteractionEmail         InteractionKind = "email"
	InteractionChat          InteractionKind = "chat"
	InteractionPhoneCall     InteractionKind = "phone_call"
	InteractionVideoCall     InteractionKind = "video_call"
	InteractionPresentation  InteractionKind = "presentation"
	InteractionReview        InteractionKind = "review"
	InteractionBrainstorming InteractionKind = "brainstorming"
	InteractionOneOnOne      InteractionKind = "one_on_one"
	InteractionTeamMeeting   InteractionKind = "team_meeting"
)

// InteractionKinds lists every valid kind in a stable order.
var InteractionKinds = []InteractionKind{
	InteractionMeeting, InteractionEmail, InteractionChat,
	InteractionPhoneCall, InteractionVideoCall, InteractionPresentation,
	InteractionReview, InteractionBrainstorming, InteractionOneOnOne,
	InteractionTeamMeeting,
}

// IsValid reports whether the kind is part of the closed enumeration.
func (k InteractionKind) IsValid() bool {
	for _, v := range InteractionKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Interaction is an append-only record of contact with a person.
// Records are never mutated after creation; corrections are made by
// appending superseding records. The referenced person must exist
// when the record is created.
type Interaction struct {
	ID           string          `json:"id" validate:"required"`
	PersonID     string          `json:"person_id" validate:"required"`
	Kind         InteractionKind `json:"kind" validate:"required"`
	Topic        string          `json:"topic,omitempty" validate:"max=500"`
	Outcome      string          `json:"outcome,omitempty" validate:"max=500"`
	Notes        string          `json:"notes,omitempty"`
	Participants []string        `json:"participants,omitempty" validate:"max=100"`
	OccurredAt   time.Time       `json:"occurred_at" validate:"required"`
}

// NewInteraction builds an interaction with a fresh ID, stamped now.
func NewInteraction(personID string, kind InteractionKind) *Interaction {
	return &Interaction{
		ID:         uuid.NewString(),
		PersonID:   personID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
}

// Window is a half-open time interval [Since, Until). A zero Until
// means "no upper bound".
type Window struct {
	Since time.Time
	Until time.Time
}

// LastDays returns a window covering the last n days ending at now.
func LastDays(n int, now time.Time) Window {
	return Window{Since: now.AddDate(0, 0, -n), Until: now}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && !t.Before(w.Until) {
		return false
	}
	return true
}

// Days returns the window length in whole days, at least 1.
func (w Window) Days() int {
	if w.Until.IsZero() || !w.Until.After(w.Since) {
		return 1
	}
	d := int(w.Until.Sub(w.Since).Hours() / 24)
	if d < 1 {
		return 1
	}
	return d
}
