package analysis

import (
	"context"
	"testing"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

func TestDegreeCentrality_EmptyGraph(t *testing.T) {
	g := graph.New(nil, nil)
	if scores := DegreeCentrality(g); len(scores) != 0 {
		t.Errorf("expected no scores for empty graph, got %d", len(scores))
	}
}

func TestDegreeCentrality_SingleNode(t *testing.T) {
	g := buildTestGraph(t, map[string]string{"a": "Eng"}, nil)
	scores := DegreeCentrality(g)
	if scores["a"] != 0 {
		t.Errorf("expected degree 0 for single node, got %f", scores["a"])
	}
}

func TestDegreeCentrality_Path(t *testing.T) {
	g := pathGraph(t)
	scores := DegreeCentrality(g)
	if !almostEqual(scores["a"], 0.5) {
		t.Errorf("a: expected 0.5, got %f", scores["a"])
	}
	if !almostEqual(scores["b"], 1.0) {
		t.Errorf("b: expected 1.0, got %f", scores["b"])
	}
	if !almostEqual(scores["c"], 0.5) {
		t.Errorf("c: expected 0.5, got %f", scores["c"])
	}
}

func TestDegreeCentrality_DirectedCountsBothEnds(t *testing.T) {
	people := []*model.Person{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	rels := []*model.Relationship{
		{FromID: "a", ToID: "b", Kind: model.KindManager},
	}
	g := graph.New(people, rels)
	scores := DegreeCentrality(g)
	if !almostEqual(scores["a"], 1.0) || !almostEqual(scores["b"], 1.0) {
		t.Errorf("expected 1.0 on both ends, got a=%f b=%f", scores["a"], scores["b"])
	}
}

func TestClosenessCentrality_Path(t *testing.T) {
	g := pathGraph(t)
	scores, err := ClosenessCentrality(context.Background(), g)
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	if !almostEqual(scores["a"], 2.0/3.0) {
		t.Errorf("a: expected 2/3, got %f", scores["a"])
	}
	if !almostEqual(scores["b"], 1.0) {
		t.Errorf("b: expected 1.0, got %f", scores["b"])
	}
}

func TestClosenessCentrality_IsolatedNodeScoresZero(t *testing.T) {
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "x": "Eng"},
		[]testEdge{{from: "a", to: "b"}},
	)
	scores, err := ClosenessCentrality(context.Background(), g)
	if err != nil {
		t.Fatalf("ClosenessCentrality failed: %v", err)
	}
	if scores["x"] != 0 {
		t.Errorf("isolated node: expected 0, got %f", scores["x"])
	}
	if !almostEqual(scores["a"], 1.0) {
		t.Errorf("a: expected 1.0 within its component, got %f", scores["a"])
	}
}

func TestBetweennessCentrality_Path(t *testing.T) {
	g := pathGraph(t)
	scores, err := BetweennessCentrality(context.Background(), g)
	if err != nil {
		t.Fatalf("BetweennessCentrality failed: %v", err)
	}
	if !almostEqual(scores["b"], 1.0) {
		t.Errorf("b: expected 1.0, got %f", scores["b"])
	}
	if scores["a"] != 0 || scores["c"] != 0 {
		t.Errorf("endpoints: expected 0, got a=%f c=%f", scores["a"], scores["c"])
	}
}

func TestBetweennessCentrality_WeightsRerouteTraffic(t *testing.T) {
	// Square a-b-d and a-c-d. The b route carries strong ties, the c
	// route weak ones, so all a-d traffic flows through b.
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "c": "Eng", "d": "Eng"},
		[]testEdge{
			{from: "a", to: "b", weight: 1.0},
			{from: "b", to: "d", weight: 1.0},
			{from: "a", to: "c", weight: 0.25},
			{from: "c", to: "d", weight: 0.25},
		},
	)
	scores, err := BetweennessCentrality(context.Background(), g)
	if err != nil {
		t.Fatalf("BetweennessCentrality failed: %v", err)
	}
	if scores["b"] <= scores["c"] {
		t.Errorf("expected strong route to dominate: b=%f c=%f", scores["b"], scores["c"])
	}
	if scores["c"] != 0 {
		t.Errorf("weak route should carry nothing, got %f", scores["c"])
	}
}

func TestBetweennessCentrality_CountsEqualPaths(t *testing.T) {
	// Diamond a-b-d, a-c-d with equal weights: b and c each carry half
	// the a-d traffic.
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "c": "Eng", "d": "Eng"},
		[]testEdge{
			{from: "a", to: "b"},
			{from: "b", to: "d"},
			{from: "a", to: "c"},
			{from: "c", to: "d"},
		},
	)
	scores, err := BetweennessCentrality(context.Background(), g)
	if err != nil {
		t.Fatalf("BetweennessCentrality failed: %v", err)
	}
	if !almostEqual(scores["b"], scores["c"]) {
		t.Errorf("expected symmetric scores, got b=%f c=%f", scores["b"], scores["c"])
	}
	// One pair (a,d) split across two paths, normalized by (n-1)(n-2)=6.
	if !almostEqual(scores["b"], 1.0/6.0) {
		t.Errorf("b: expected 1/6, got %f", scores["b"])
	}
}

func TestCentrality_ContextCancellation(t *testing.T) {
	g := pathGraph(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BetweennessCentrality(ctx, g); err == nil {
		t.Error("expected error from canceled context")
	}
	if _, err := ClosenessCentrality(ctx, g); err == nil {
		t.Error("expected error from canceled context")
	}
}
