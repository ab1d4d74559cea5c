package model

import (
	"strings"
	"testing"
	"time"
)

func validPerson() *Person {
	p := NewPerson("Ada Kowalski")
	p.Email = "ada@example.com"
	p.Department = "Engineering"
	p.Expertise = []string{"Go", "Postgres"}
	return p
}

func TestNewPerson(t *testing.T) {
	p := NewPerson("Ada")
	if p.ID == "" {
		t.Error("expected generated ID")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}
	q := NewPerson("Ben")
	if p.ID == q.ID {
		t.Error("IDs should be unique")
	}
}

func TestNormalizeExpertise(t *testing.T) {
	p := NewPerson("Ada")
	p.Expertise = []string{"Go", "go", " GO ", "Postgres", "", "postgres"}
	p.NormalizeExpertise()
	if len(p.Expertise) != 2 {
		t.Fatalf("expected 2 tags, got %v", p.Expertise)
	}
	if p.Expertise[0] != "Go" || p.Expertise[1] != "Postgres" {
		t.Errorf("first-seen casing should win: %v", p.Expertise)
	}
}

func TestHasExpertise(t *testing.T) {
	p := validPerson()
	if !p.HasExpertise("go") {
		t.Error("case-insensitive match failed")
	}
	if !p.HasExpertise("POSTGRES") {
		t.Error("uppercase query should match")
	}
	if !p.HasExpertise("gres") {
		t.Error("substring match failed")
	}
	if p.HasExpertise("rust") {
		t.Error("unexpected match")
	}
}

func TestPersonClone(t *testing.T) {
	p := validPerson()
	p.Attributes = map[string]string{"x-crm-id": "42"}
	c := p.Clone()

	c.Expertise[0] = "changed"
	c.Attributes["x-crm-id"] = "changed"
	if p.Expertise[0] != "Go" {
		t.Error("clone shares expertise slice")
	}
	if p.Attributes["x-crm-id"] != "42" {
		t.Error("clone shares attributes map")
	}
}

func TestValidatePerson(t *testing.T) {
	if err := ValidatePerson(validPerson()); err != nil {
		t.Fatalf("valid person rejected: %v", err)
	}
	if err := ValidatePerson(nil); err == nil {
		t.Error("nil person accepted")
	}

	p := validPerson()
	p.Name = ""
	if err := ValidatePerson(p); err == nil {
		t.Error("empty name accepted")
	}

	p = validPerson()
	p.Email = "not-an-email"
	if err := ValidatePerson(p); err == nil {
		t.Error("malformed email accepted")
	}

	p = validPerson()
	p.CommPreference = "carrier_pigeon"
	if err := ValidatePerson(p); err == nil {
		t.Error("unknown communication preference accepted")
	}

	p = validPerson()
	p.CommPreference = PrefChat
	if err := ValidatePerson(p); err != nil {
		t.Errorf("known preference rejected: %v", err)
	}
}

func TestValidateRelationship(t *testing.T) {
	r := &Relationship{FromID: "a", ToID: "b", Kind: KindColleague, CreatedAt: time.Now()}
	if err := ValidateRelationship(r); err != nil {
		t.Fatalf("valid relationship rejected: %v", err)
	}

	loop := &Relationship{FromID: "a", ToID: "a", Kind: KindColleague}
	err := ValidateRelationship(loop)
	if err == nil {
		t.Fatal("self-loop accepted")
	}
	if !strings.Contains(err.Error(), "self-loop") {
		t.Errorf("unexpected message: %v", err)
	}

	bad := &Relationship{FromID: "a", ToID: "b", Kind: "frenemy"}
	if err := ValidateRelationship(bad); err == nil {
		t.Error("unknown kind accepted")
	}

	tooStrong := 1.5
	r = &Relationship{FromID: "a", ToID: "b", Kind: KindColleague, Strength: &tooStrong}
	if err := ValidateRelationship(r); err == nil {
		t.Error("strength above 1 accepted")
	}
}

func TestValidateInteraction(t *testing.T) {
	i := NewInteraction("person-1", InteractionMeeting)
	if err := ValidateInteraction(i); err != nil {
		t.Fatalf("valid interaction rejected: %v", err)
	}
	i.Kind = "seance"
	if err := ValidateInteraction(i); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestParseRelationshipKind(t *testing.T) {
	k, err := ParseRelationshipKind("mentor")
	if err != nil || k != KindMentor {
		t.Errorf("expected mentor, got %v (%v)", k, err)
	}
	if _, err := ParseRelationshipKind("bff"); err == nil {
		t.Error("unknown kind parsed")
	}
}

func TestRelationshipKindHierarchical(t *testing.T) {
	if !KindManager.IsHierarchical() || !KindDirectReport.IsHierarchical() {
		t.Error("reporting-line kinds should be hierarchical")
	}
	if KindColleague.IsHierarchical() {
		t.Error("colleague is not hierarchical")
	}
}

func TestEffectiveWeight(t *testing.T) {
	r := &Relationship{FromID: "a", ToID: "b", Kind: KindColleague}
	if r.EffectiveWeight() != DefaultEdgeWeight {
		t.Errorf("expected default weight, got %v", r.EffectiveWeight())
	}
	s := 0.4
	r.Strength = &s
	if r.EffectiveWeight() != 0.4 {
		t.Errorf("expected 0.4, got %v", r.EffectiveWeight())
	}
}

func TestRelationshipClone(t *testing.T) {
	s := 0.7
	r := &Relationship{FromID: "a", ToID: "b", Kind: KindColleague, Strength: &s}
	c := r.Clone()
	*c.Strength = 0.1
	if *r.Strength != 0.7 {
		t.Error("clone shares strength pointer")
	}
}

func TestWindowContains(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	w := LastDays(30, now)

	if !w.Contains(now.AddDate(0, 0, -10)) {
		t.Error("time inside window rejected")
	}
	if w.Contains(now.AddDate(0, 0, -31)) {
		t.Error("time before window accepted")
	}
	if w.Contains(now) {
		t.Error("upper bound is exclusive")
	}
	if !w.Contains(w.Since) {
		t.Error("lower bound is inclusive")
	}

	open := Window{Since: now.AddDate(0, 0, -7)}
	if !open.Contains(now.AddDate(1, 0, 0)) {
		t.Error("open-ended window should accept future times")
	}
}

func TestWindowDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := LastDays(30, now).Days(); got != 30 {
		t.Errorf("expected 30 days, got %d", got)
	}
	if got := (Window{Since: now}).Days(); got != 1 {
		t.Errorf("open window should report 1 day, got %d", got)
	}
	short := Window{Since: now, Until: now.Add(2 * time.Hour)}
	if got := short.Days(); got != 1 {
		t.Errorf("sub-day window should report 1 day, got %d", got)
	}
}
