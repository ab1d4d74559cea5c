package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CommPreference tags how a person prefers to be contacted.
type CommPreference string

const (
	PrefEmail        CommPreference = "email"
	PrefVideoCall    CommPreference = "video_call"
	PrefPhoneCall    CommPreference = "phone_call"
	PrefChat         CommPreference = "chat"
	PrefInPerson     CommPreference = "in_person"
	PrefAsyncMessage CommPreference = "async_message"
)

// IsValid reports whether the preference is one of the known tags.
// The empty preference is valid (no stated preference).
func (p CommPreference) IsValid() bool {
	switch p {
	case "", PrefEmail, PrefVideoCall, PrefPhoneCall, PrefChat, PrefInPerson, PrefAsyncMessage:
		return true
	}
	return false
}

// Person is a coworker node in the workplace graph.
//
// ID is assigned on creation and immutable afterwards. Email, when set,
// is unique across all persons; the store enforces both invariants.
// Attributes is an open key/value bag for consumer extensions; keys
// should be namespaced "x-<consumer>-<name>" to avoid collisions with
// future first-class fields.
type Person struct {
	ID              string            `json:"id" validate:"required"`
	Name            string            `json:"name" validate:"required,max=200"`
	Email           string            `json:"email,omitempty" validate:"omitempty,email"`
	Role            string            `json:"role,omitempty" validate:"max=200"`
	Department      string            `json:"department,omitempty" validate:"max=200"`
	Location        string            `json:"location,omitempty" validate:"max=200"`
	Expertise       []string          `json:"expertise,omitempty" validate:"max=50,dive,min=1,max=100"`
	CommPreference  CommPreference    `json:"comm_preference,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty" validate:"omitempty,max=50"`
	CreatedAt       time.Time         `json:"created_at"`
	LastInteraction time.Time         `json:"last_interaction,omitempty"`
}

// NewPerson builds a person with a fresh ID and creation timestamp.
// Expertise is deduplicated preserving first-seen order.
func NewPerson(name string) *Person {
	return &Person{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeExpertise deduplicates the expertise list in place,
// preserving the order of first occurrence. Comparison is
// case-insensitive but the original casing of the first occurrence
// is kept.
func (p *Person) NormalizeExpertise() {
	if len(p.Expertise) < 2 {
		return
	}
	seen := make(map[string]bool, len(p.Expertise))
	out := p.Expertise[:0]
	for _, e := range p.Expertise {
		key := strings.ToLower(strings.TrimSpace(e))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	p.Expertise = out
}

// HasExpertise reports whether any expertise tag contains area
// (case-insensitive substring match, mirroring directory search).
func (p *Person) HasExpertise(area string) bool {
	area = strings.ToLower(area)
	for _, e := range p.Expertise {
		if strings.Contains(strings.ToLower(e), area) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the person.
func (p *Person) Clone() *Person {
	clone := *p
	clone.Expertise = append([]string(nil), p.Expertise...)
	if p.Attributes != nil {
		clone.Attributes = make(map[string]string, len(p.Attributes))
		for k, v := range p.Attributes {
			clone.Attributes[k] = v
		}
	}
	return &clone
}
