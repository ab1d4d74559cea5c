package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCollaborationPaths_Diamond(t *testing.T) {
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "c": "Eng", "d": "Eng"},
		[]testEdge{
			{from: "a", to: "b"}, {from: "b", to: "d"},
			{from: "a", to: "c"}, {from: "c", to: "d"},
		},
	)
	res, err := CollaborationPaths(context.Background(), g, "a", "d")
	if err != nil {
		t.Fatalf("CollaborationPaths failed: %v", err)
	}
	if !reflect.DeepEqual(res.Shortest, []string{"a", "b", "d"}) {
		t.Errorf("shortest: got %v", res.Shortest)
	}
	if len(res.Paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", res.Paths)
	}
	if !reflect.DeepEqual(res.Paths[1], []string{"a", "c", "d"}) {
		t.Errorf("second path: got %v", res.Paths[1])
	}
}

func TestCollaborationPaths_NoRoute(t *testing.T) {
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "x": "Sales"},
		[]testEdge{{from: "a", to: "b"}},
	)
	res, err := CollaborationPaths(context.Background(), g, "a", "x")
	if err != nil {
		t.Fatalf("CollaborationPaths failed: %v", err)
	}
	if len(res.Paths) != 0 || res.Shortest != nil {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestCollaborationPaths_SamePerson(t *testing.T) {
	g := pathGraph(t)
	res, err := CollaborationPaths(context.Background(), g, "a", "a")
	if err != nil {
		t.Fatalf("CollaborationPaths failed: %v", err)
	}
	if !reflect.DeepEqual(res.Shortest, []string{"a"}) {
		t.Errorf("expected trivial path, got %v", res.Shortest)
	}
}

func TestCollaborationPaths_UnknownEndpoint(t *testing.T) {
	g := pathGraph(t)
	_, err := CollaborationPaths(context.Background(), g, "a", "nobody")
	var notFound *PersonNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PersonNotFoundError, got %v", err)
	}
}

func TestCollaborationPaths_HonorsHopCap(t *testing.T) {
	// Chain a-b-c-d-e-f: a to f needs five hops, over the cap.
	g := buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "c": "Eng", "d": "Eng", "e": "Eng", "f": "Eng"},
		[]testEdge{
			{from: "a", to: "b"}, {from: "b", to: "c"}, {from: "c", to: "d"},
			{from: "d", to: "e"}, {from: "e", to: "f"},
		},
	)
	res, err := CollaborationPaths(context.Background(), g, "a", "f")
	if err != nil {
		t.Fatalf("CollaborationPaths failed: %v", err)
	}
	if len(res.Paths) != 0 {
		t.Errorf("five-hop route should be over the cap, got %v", res.Paths)
	}
}
