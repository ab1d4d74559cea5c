package analysis

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

func expertsGraph(t *testing.T) *graph.Graph {
	t.Helper()
	people := []*model.Person{
		{ID: "a", Name: "Alice", Department: "Engineering", Expertise: []string{"Go", "Kubernetes"}, CreatedAt: time.Now()},
		{ID: "b", Name: "Bob", Department: "Engineering", Expertise: []string{"go"}, CreatedAt: time.Now()},
		{ID: "c", Name: "Cara", Department: "Sales", Expertise: []string{"Negotiation"}, CreatedAt: time.Now()},
		{ID: "d", Name: "Dan", Department: "Sales", CreatedAt: time.Now()},
	}
	rels := []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindColleague, Bidirectional: true},
		{FromID: "a", ToID: "c", Kind: model.KindStakeholder, Bidirectional: true},
		{FromID: "a", ToID: "d", Kind: model.KindStakeholder, Bidirectional: true},
	}
	return graph.New(people, rels)
}

func TestFindExperts_CaseInsensitiveSubstring(t *testing.T) {
	g := expertsGraph(t)
	experts := FindExperts(g, "GO")
	if len(experts) != 2 {
		t.Fatalf("expected 2 experts, got %v", experts)
	}
	// Alice has degree 3, Bob degree 1.
	if experts[0].PersonID != "a" || experts[1].PersonID != "b" {
		t.Errorf("expected a then b, got %s then %s", experts[0].PersonID, experts[1].PersonID)
	}
}

func TestFindExperts_EmptyAreaMatchesNobody(t *testing.T) {
	g := expertsGraph(t)
	if experts := FindExperts(g, "  "); experts != nil {
		t.Errorf("expected nil, got %v", experts)
	}
}

func TestFindExperts_NoMatch(t *testing.T) {
	g := expertsGraph(t)
	if experts := FindExperts(g, "haskell"); len(experts) != 0 {
		t.Errorf("expected none, got %v", experts)
	}
}

func TestExpertiseClusters_GroupsAndSkipsSingles(t *testing.T) {
	g := expertsGraph(t)
	clusters, err := ExpertiseClusters(context.Background(), g)
	if err != nil {
		t.Fatalf("ExpertiseClusters failed: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %v", clusters)
	}
	if clusters[0].Area != "go" {
		t.Errorf("expected go cluster, got %s", clusters[0].Area)
	}
	if !reflect.DeepEqual(clusters[0].Members, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", clusters[0].Members)
	}
}

func TestNetworkDensity(t *testing.T) {
	g := expertsGraph(t)
	// 3 edges of 6 possible among 4 people.
	if got := NetworkDensity(g); !almostEqual(got, 0.5) {
		t.Errorf("expected 0.5, got %f", got)
	}
	single := buildTestGraph(t, map[string]string{"a": "Eng"}, nil)
	if got := NetworkDensity(single); got != 0 {
		t.Errorf("single node density should be 0, got %f", got)
	}
}
