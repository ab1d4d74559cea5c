package analysis

import (
	"testing"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

// testEdge describes one undirected connection for graph builders.
type testEdge struct {
	from, to string
	weight   float64
}

// buildTestGraph assembles a snapshot from shorthand: person IDs map to
// departments, edges become bidirectional colleague relationships. A
// zero weight means the default strength.
func buildTestGraph(t *testing.T, depts map[string]string, edges []testEdge) *graph.Graph {
	t.Helper()
	var people []*model.Person
	for id, dept := range depts {
		people = append(people, &model.Person{
			ID:         id,
			Name:       "Person " + id,
			Department: dept,
			CreatedAt:  time.Now().UTC(),
		})
	}
	var rels []*model.Relationship
	for _, e := range edges {
		rel := &model.Relationship{
			FromID:        e.from,
			ToID:          e.to,
			Kind:          model.KindColleague,
			Bidirectional: true,
		}
		if e.weight > 0 {
			w := e.weight
			rel.Strength = &w
		}
		rels = append(rels, rel)
	}
	return graph.New(people, rels)
}

// pathGraph is a-b-c with unit weights.
func pathGraph(t *testing.T) *graph.Graph {
	t.Helper()
	return buildTestGraph(t,
		map[string]string{"a": "Eng", "b": "Eng", "c": "Eng"},
		[]testEdge{{from: "a", to: "b"}, {from: "b", to: "c"}},
	)
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
