package insight

import (
	"context"
	"testing"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store/memory"
)

// seedOrg builds a small two-department org with interactions in the
// current window.
func seedOrg(t *testing.T) store.Store {
	t.Helper()
	st := memory.New()
	ctx := context.Background()

	people := []*model.Person{
		{ID: "e1", Name: "Erin", Department: "Engineering", Expertise: []string{"go"}, CreatedAt: time.Now()},
		{ID: "e2", Name: "Evan", Department: "Engineering", Expertise: []string{"go"}, CreatedAt: time.Now()},
		{ID: "e3", Name: "Elle", Department: "Engineering", CreatedAt: time.Now()},
		{ID: "s1", Name: "Sam", Department: "Sales", CreatedAt: time.Now()},
		{ID: "s2", Name: "Sky", Department: "Sales", CreatedAt: time.Now()},
	}
	for _, p := range people {
		if err := st.CreatePerson(ctx, p); err != nil {
			t.Fatalf("CreatePerson: %v", err)
		}
	}
	rels := []*model.Relationship{
		{FromID: "e1", ToID: "e2", Kind: model.KindColleague, Bidirectional: true},
		{FromID: "e2", ToID: "e3", Kind: model.KindColleague, Bidirectional: true},
		{FromID: "e1", ToID: "e3", Kind: model.KindColleague, Bidirectional: true},
		{FromID: "e3", ToID: "s1", Kind: model.KindStakeholder, Bidirectional: true},
		{FromID: "s1", ToID: "s2", Kind: model.KindColleague, Bidirectional: true},
	}
	for _, r := range rels {
		if err := st.CreateRelationship(ctx, r); err != nil {
			t.Fatalf("CreateRelationship: %v", err)
		}
	}

	meeting := model.NewInteraction("e1", model.InteractionMeeting)
	meeting.Participants = []string{"s1"}
	meeting.OccurredAt = time.Now().UTC().AddDate(0, 0, -1)
	if err := st.CreateInteraction(ctx, meeting); err != nil {
		t.Fatalf("CreateInteraction: %v", err)
	}
	standup := model.NewInteraction("e2", model.InteractionTeamMeeting)
	standup.Participants = []string{"e1", "e3"}
	standup.OccurredAt = time.Now().UTC().AddDate(0, 0, -2)
	if err := st.CreateInteraction(ctx, standup); err != nil {
		t.Fatalf("CreateInteraction: %v", err)
	}
	return st
}

func TestGenerateReport_FullSweep(t *testing.T) {
	reporter := NewReporter(seedOrg(t), nil, nil)
	report, err := reporter.GenerateReport(context.Background(), ReportOptions{TopN: 3})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if report.Empty {
		t.Fatal("report should not be empty")
	}
	if report.People != 5 || report.Edges != 5 {
		t.Errorf("shape wrong: people=%d edges=%d", report.People, report.Edges)
	}
	if len(report.Influential) != 3 {
		t.Errorf("expected top 3, got %d", len(report.Influential))
	}
	// e3 bridges the departments and must rank first.
	if report.Influential[0].PersonID != "e3" {
		t.Errorf("expected e3 most influential, got %s", report.Influential[0].PersonID)
	}
	if len(report.Communities) == 0 {
		t.Error("expected communities")
	}
	if len(report.Connectors) == 0 || report.Connectors[0].PersonID != "e3" {
		t.Errorf("expected e3 as top connector, got %v", report.Connectors)
	}
	if report.Health <= 0 || report.Health > 1 {
		t.Errorf("health out of range: %f", report.Health)
	}
	if len(report.Clusters) != 1 || report.Clusters[0].Area != "go" {
		t.Errorf("expected one go cluster, got %v", report.Clusters)
	}
}

func TestGenerateReport_InteractionStats(t *testing.T) {
	reporter := NewReporter(seedOrg(t), nil, nil)
	report, err := reporter.GenerateReport(context.Background(), ReportOptions{Window: 30})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	stats := report.Interaction
	if stats == nil {
		t.Fatal("expected interaction stats")
	}
	if stats.Total != 2 {
		t.Errorf("expected 2 interactions, got %d", stats.Total)
	}
	if stats.ByKind["meeting"] != 1 || stats.ByKind["team_meeting"] != 1 {
		t.Errorf("by-kind counts wrong: %v", stats.ByKind)
	}
	// One cross-department meeting, one internal standup with two
	// participants.
	var cross, internal int
	for _, pair := range stats.ByDeptPair {
		if pair.DeptA == "Engineering" && pair.DeptB == "Sales" {
			cross = pair.Count
		}
		if pair.DeptA == "Engineering" && pair.DeptB == "Engineering" {
			internal = pair.Count
		}
	}
	if cross != 1 {
		t.Errorf("expected 1 cross-department interaction, got %d", cross)
	}
	if internal != 2 {
		t.Errorf("expected 2 internal pairings, got %d", internal)
	}
}

func TestGenerateReport_EmptyScope(t *testing.T) {
	reporter := NewReporter(seedOrg(t), nil, nil)
	report, err := reporter.GenerateReport(context.Background(), ReportOptions{
		Scope: graph.Scope{Departments: []string{"Nonexistent"}},
	})
	if err != nil {
		t.Fatalf("empty scope must not error: %v", err)
	}
	if !report.Empty {
		t.Error("expected Empty flag")
	}
	if report.People != 0 || len(report.Influential) != 0 {
		t.Errorf("empty report carries data: %+v", report)
	}
}

func TestGenerateReport_ScopedToDepartment(t *testing.T) {
	reporter := NewReporter(seedOrg(t), nil, nil)
	report, err := reporter.GenerateReport(context.Background(), ReportOptions{
		Scope: graph.Scope{Departments: []string{"Sales"}},
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if report.People != 2 {
		t.Errorf("expected 2 people in Sales scope, got %d", report.People)
	}
}

func TestNetworkHealth_Bounds(t *testing.T) {
	single := graph.New([]*model.Person{{ID: "a", Name: "A"}}, nil)
	if h := NetworkHealth(single); !floatNear(h, 0.4) {
		t.Errorf("lone node: expected 0.4 (fully connected, zero density), got %f", h)
	}

	empty := graph.New(nil, nil)
	if h := NetworkHealth(empty); h != 0 {
		t.Errorf("empty graph: expected 0, got %f", h)
	}

	pair := graph.New(
		[]*model.Person{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		[]*model.Relationship{{FromID: "a", ToID: "b", Kind: model.KindColleague, Bidirectional: true}},
	)
	if h := NetworkHealth(pair); !floatNear(h, 1.0) {
		t.Errorf("complete pair: expected 1.0, got %f", h)
	}
}

func floatNear(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
