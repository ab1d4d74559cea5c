package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/logging"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

// cmdSeed loads a small org into the store so report and recommend
// have something to chew on.
func cmdSeed(ctx context.Context, st store.Store, logger logging.Logger) error {
	type seedPerson struct {
		name, role, dept string
		expertise        []string
	}
	seeds := []seedPerson{
		{"Ada Kowalski", "Engineering Manager", "Engineering", []string{"go", "distributed systems"}},
		{"Ben Osei", "Backend Engineer", "Engineering", []string{"go", "postgres"}},
		{"Carla Mendes", "Backend Engineer", "Engineering", []string{"postgres", "kubernetes"}},
		{"Deniz Arslan", "Frontend Engineer", "Engineering", []string{"typescript", "react"}},
		{"Elena Petrova", "Sales Lead", "Sales", []string{"enterprise sales"}},
		{"Farid Haddad", "Account Executive", "Sales", []string{"enterprise sales", "negotiation"}},
		{"Grace Lin", "Account Executive", "Sales", []string{"negotiation"}},
		{"Hugo Alves", "Product Marketer", "Marketing", []string{"positioning", "react"}},
	}
	people := make(map[string]*model.Person, len(seeds))
	for _, s := range seeds {
		p := model.NewPerson(s.name)
		p.Role = s.role
		p.Department = s.dept
		p.Expertise = s.expertise
		p.Email = strings.ToLower(strings.ReplaceAll(s.name, " ", ".")) + "@example.com"
		if err := st.CreatePerson(ctx, p); err != nil {
			return err
		}
		people[s.name] = p
	}

	strength := func(v float64) *float64 { return &v }
	type seedRel struct {
		from, to string
		kind     model.RelationshipKind
		bidi     bool
		strength *float64
	}
	rels := []seedRel{
		{"Ada Kowalski", "Ben Osei", model.KindManager, false, strength(0.9)},
		{"Ada Kowalski", "Carla Mendes", model.KindManager, false, strength(0.9)},
		{"Ada Kowalski", "Deniz Arslan", model.KindManager, false, strength(0.8)},
		{"Ben Osei", "Carla Mendes", model.KindColleague, true, strength(0.7)},
		{"Carla Mendes", "Deniz Arslan", model.KindCollaborator, true, strength(0.5)},
		{"Elena Petrova", "Farid Haddad", model.KindManager, false, strength(0.9)},
		{"Elena Petrova", "Grace Lin", model.KindManager, false, strength(0.8)},
		{"Farid Haddad", "Grace Lin", model.KindColleague, true, strength(0.6)},
		{"Ada Kowalski", "Elena Petrova", model.KindStakeholder, true, strength(0.4)},
		{"Hugo Alves", "Deniz Arslan", model.KindCollaborator, true, strength(0.6)},
		{"Hugo Alves", "Elena Petrova", model.KindStakeholder, true, strength(0.5)},
	}
	for _, r := range rels {
		rel := &model.Relationship{
			FromID:        people[r.from].ID,
			ToID:          people[r.to].ID,
			Kind:          r.kind,
			Bidirectional: r.bidi,
			Strength:      r.strength,
			CreatedAt:     time.Now().UTC(),
		}
		if err := st.CreateRelationship(ctx, rel); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	type seedInteraction struct {
		who, topic   string
		kind         model.InteractionKind
		participants []string
		daysAgo      int
	}
	interactions := []seedInteraction{
		{"Ada Kowalski", "sprint planning", model.InteractionTeamMeeting, []string{"Ben Osei", "Carla Mendes", "Deniz Arslan"}, 2},
		{"Ben Osei", "query performance", model.InteractionReview, []string{"Carla Mendes"}, 5},
		{"Elena Petrova", "pipeline review", model.InteractionMeeting, []string{"Farid Haddad", "Grace Lin"}, 3},
		{"Ada Kowalski", "quarterly sync", model.InteractionMeeting, []string{"Elena Petrova"}, 7},
		{"Hugo Alves", "launch messaging", model.InteractionBrainstorming, []string{"Deniz Arslan", "Elena Petrova"}, 4},
	}
	for _, s := range interactions {
		ia := model.NewInteraction(people[s.who].ID, s.kind)
		ia.Topic = s.topic
		ia.OccurredAt = now.AddDate(0, 0, -s.daysAgo)
		for _, name := range s.participants {
			ia.Participants = append(ia.Participants, people[name].ID)
		}
		if err := st.CreateInteraction(ctx, ia); err != nil {
			return err
		}
	}

	logger.Info("seed data loaded",
		logging.Int("people", len(seeds)),
		logging.Int("relationships", len(rels)),
		logging.Int("interactions", len(interactions)),
	)
	fmt.Printf("seeded %d people, %d relationships, %d interactions\n",
		len(seeds), len(rels), len(interactions))
	return nil
}
