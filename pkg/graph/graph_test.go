package graph

import (
	"reflect"
	"testing"

	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

func strength(v float64) *float64 { return &v }

func testPeople(ids ...string) []*model.Person {
	people := make([]*model.Person, len(ids))
	for i, id := range ids {
		people[i] = &model.Person{ID: id, Name: "Person " + id}
	}
	return people
}

func TestNew_BidirectionalExpandsToTwoArcs(t *testing.T) {
	g := New(testPeople("a", "b"), []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindColleague, Bidirectional: true},
	})
	if g.SizeArcs() != 2 {
		t.Fatalf("expected 2 arcs, got %d", g.SizeArcs())
	}
	if !g.HasArc("a", "b") || !g.HasArc("b", "a") {
		t.Error("expected arcs in both directions")
	}
}

func TestNew_DirectedKeepsOneArc(t *testing.T) {
	g := New(testPeople("a", "b"), []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindManager},
	})
	if g.SizeArcs() != 1 {
		t.Fatalf("expected 1 arc, got %d", g.SizeArcs())
	}
	if !g.HasArc("a", "b") || g.HasArc("b", "a") {
		t.Error("expected a->b only")
	}
	if !g.Connected("a", "b") || !g.Connected("b", "a") {
		t.Error("Connected ignores direction")
	}
}

func TestNew_SkipsUnknownEndpoints(t *testing.T) {
	g := New(testPeople("a"), []*model.Relationship{
		{FromID: "a", ToID: "ghost", Kind: model.KindColleague},
		{FromID: "ghost", ToID: "a", Kind: model.KindColleague},
	})
	if g.SizeArcs() != 0 {
		t.Errorf("edges to absent people must be dropped, got %d arcs", g.SizeArcs())
	}
	if g.Order() != 1 {
		t.Errorf("expected 1 node, got %d", g.Order())
	}
}

func TestNodeIDs_Sorted(t *testing.T) {
	g := New(testPeople("zed", "alf", "mid"), nil)
	want := []string{"alf", "mid", "zed"}
	if !reflect.DeepEqual(g.NodeIDs(), want) {
		t.Errorf("expected %v, got %v", want, g.NodeIDs())
	}
}

func TestWeight_BestPerPair(t *testing.T) {
	g := New(testPeople("a", "b"), []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindColleague, Strength: strength(0.3)},
		{FromID: "a", ToID: "b", Kind: model.KindCollaborator, Strength: strength(0.8)},
	})
	if w := g.Weight("a", "b"); w != 0.8 {
		t.Errorf("expected the stronger edge to win, got %f", w)
	}
}

func TestWeight_DefaultsWithoutStrength(t *testing.T) {
	g := New(testPeople("a", "b"), []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindColleague},
	})
	if w := g.Weight("a", "b"); w != model.DefaultEdgeWeight {
		t.Errorf("expected default weight, got %f", w)
	}
}

func TestNeighbors_SortedAndUndirected(t *testing.T) {
	g := New(testPeople("m", "a", "z"), []*model.Relationship{
		{FromID: "m", ToID: "z", Kind: model.KindColleague},
		{FromID: "a", ToID: "m", Kind: model.KindColleague},
	})
	want := []string{"a", "z"}
	if got := g.Neighbors("m"); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestUndirectedEdges_DeduplicatesPairs(t *testing.T) {
	g := New(testPeople("a", "b"), []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindColleague, Bidirectional: true},
		{FromID: "b", ToID: "a", Kind: model.KindMentor},
	})
	edges := g.UndirectedEdges()
	if len(edges) != 1 {
		t.Fatalf("expected one undirected edge, got %d", len(edges))
	}
	if edges[0].A != "a" || edges[0].B != "b" {
		t.Errorf("edge endpoints not normalized: %+v", edges[0])
	}
}

func TestDepartments_GroupsMembers(t *testing.T) {
	people := testPeople("a", "b", "c")
	people[0].Department = "Eng"
	people[1].Department = "Eng"
	people[2].Department = "Sales"
	g := New(people, nil)
	depts := g.Departments()
	if !reflect.DeepEqual(depts["Eng"], []string{"a", "b"}) {
		t.Errorf("Eng members: got %v", depts["Eng"])
	}
	if !reflect.DeepEqual(depts["Sales"], []string{"c"}) {
		t.Errorf("Sales members: got %v", depts["Sales"])
	}
}

func TestClone_Independent(t *testing.T) {
	g := New(testPeople("a", "b"), []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindColleague},
	})
	clone := g.Clone()
	if clone.Order() != g.Order() || clone.SizeArcs() != g.SizeArcs() {
		t.Fatalf("clone shape differs")
	}
	clone.Person("a").Name = "changed"
	if g.Person("a").Name == "changed" {
		t.Error("clone shares person data with original")
	}
}
