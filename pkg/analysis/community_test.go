package analysis

import (
	"context"
	"reflect"
	"testing"
)

// twoTriangles is two tight clusters joined by a single weak edge.
func twoTriangles(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"a": "Eng", "b": "Eng", "c": "Eng",
		"d": "Sales", "e": "Sales", "f": "Sales",
	}
}

func twoTriangleEdges() []testEdge {
	return []testEdge{
		{from: "a", to: "b"}, {from: "b", to: "c"}, {from: "a", to: "c"},
		{from: "d", to: "e"}, {from: "e", to: "f"}, {from: "d", to: "f"},
		{from: "c", to: "d", weight: 0.3},
	}
}

func TestDetectCommunities_TwoClusters(t *testing.T) {
	g := buildTestGraph(t, twoTriangles(t), twoTriangleEdges())
	res, err := DetectCommunities(context.Background(), g)
	if err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}
	if len(res.Communities) != 2 {
		t.Fatalf("expected 2 communities, got %d", len(res.Communities))
	}
	want0 := []string{"a", "b", "c"}
	want1 := []string{"d", "e", "f"}
	if !reflect.DeepEqual(res.Communities[0].Members, want0) {
		t.Errorf("community 0: expected %v, got %v", want0, res.Communities[0].Members)
	}
	if !reflect.DeepEqual(res.Communities[1].Members, want1) {
		t.Errorf("community 1: expected %v, got %v", want1, res.Communities[1].Members)
	}
	if res.Modularity <= 0 {
		t.Errorf("expected positive modularity, got %f", res.Modularity)
	}
}

func TestDetectCommunities_SizeDensityAndLookup(t *testing.T) {
	g := buildTestGraph(t, twoTriangles(t), twoTriangleEdges())
	res, err := DetectCommunities(context.Background(), g)
	if err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}
	for _, c := range res.Communities {
		if c.Size != 3 {
			t.Errorf("community %d: expected size 3, got %d", c.ID, c.Size)
		}
		// Each triangle holds all 3 of its possible edges.
		if !almostEqual(c.Density, 1.0) {
			t.Errorf("community %d: expected density 1.0, got %f", c.ID, c.Density)
		}
	}
	if len(res.NodeCommunity) != 6 {
		t.Fatalf("expected every person mapped, got %v", res.NodeCommunity)
	}
	for _, id := range []string{"a", "b", "c"} {
		if res.NodeCommunity[id] != 0 {
			t.Errorf("%s: expected community 0, got %d", id, res.NodeCommunity[id])
		}
	}
	for _, id := range []string{"d", "e", "f"} {
		if res.NodeCommunity[id] != 1 {
			t.Errorf("%s: expected community 1, got %d", id, res.NodeCommunity[id])
		}
	}
}

func TestDetectCommunities_Deterministic(t *testing.T) {
	g := buildTestGraph(t, twoTriangles(t), twoTriangleEdges())
	first, err := DetectCommunities(context.Background(), g)
	if err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := DetectCommunities(context.Background(), g)
		if err != nil {
			t.Fatalf("DetectCommunities failed: %v", err)
		}
		if !reflect.DeepEqual(first.Communities, again.Communities) {
			t.Fatalf("run %d differed: %v vs %v", i, first.Communities, again.Communities)
		}
	}
}

func TestDetectCommunities_NoEdges(t *testing.T) {
	g := buildTestGraph(t, map[string]string{"a": "Eng", "b": "Eng"}, nil)
	res, err := DetectCommunities(context.Background(), g)
	if err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}
	if len(res.Communities) != 2 {
		t.Fatalf("expected singleton communities, got %d", len(res.Communities))
	}
	for _, c := range res.Communities {
		if len(c.Members) != 1 {
			t.Errorf("expected singleton, got %v", c.Members)
		}
	}
}

func TestDetectCommunities_EmptyGraph(t *testing.T) {
	g := buildTestGraph(t, nil, nil)
	res, err := DetectCommunities(context.Background(), g)
	if err != nil {
		t.Fatalf("DetectCommunities failed: %v", err)
	}
	if len(res.Communities) != 0 {
		t.Errorf("expected no communities, got %d", len(res.Communities))
	}
}

func TestConnectedComponents_OrdersBySize(t *testing.T) {
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "c": "Eng", "x": "Sales", "y": "Sales"},
		[]testEdge{{from: "a", to: "b"}, {from: "b", to: "c"}, {from: "x", to: "y"}},
	)
	components := ConnectedComponents(g)
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(components))
	}
	if !reflect.DeepEqual(components[0], []string{"a", "b", "c"}) {
		t.Errorf("largest first: got %v", components[0])
	}
	if !reflect.DeepEqual(components[1], []string{"x", "y"}) {
		t.Errorf("second component: got %v", components[1])
	}
}
