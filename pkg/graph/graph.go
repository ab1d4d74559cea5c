// Package graph builds ephemeral in-memory snapshots of the workplace
// graph for algorithmic analysis. A Graph is constructed fresh per
// analysis request, is immutable once built, and is never persisted.
package graph

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

// Arc is a directed, weighted traversal edge. Bidirectional
// relationships are expanded into two arcs at build time.
type Arc struct {
	From   string
	To     string
	Kind   model.RelationshipKind
	Weight float64
}

// Edge is an undirected, deduplicated view of an arc pair, used by
// community detection and export. A < B always holds.
type Edge struct {
	A      string
	B      string
	Kind   model.RelationshipKind
	Weight float64
}

// Graph is an immutable weighted snapshot keyed by person ID.
// Node order and per-node arc order are sorted by ID so every
// algorithm downstream is deterministic for a given input.
type Graph struct {
	people   map[string]*model.Person
	ids      []string // sorted person IDs
	out      map[string][]Arc
	in       map[string][]Arc
	pairW    map[[2]string]float64 // ordered pair -> best weight
	arcCount int
	weighted bool // true when any relationship carried a strength score
}

// New builds a graph from a set of people and the relationships whose
// endpoints are all present. Relationships referencing unknown people
// are skipped.
func New(people []*model.Person, relationships []*model.Relationship) *Graph {
	g := &Graph{
		people: make(map[string]*model.Person, len(people)),
		out:    make(map[string][]Arc),
		in:     make(map[string][]Arc),
		pairW:  make(map[[2]string]float64),
	}
	for _, p := range people {
		g.people[p.ID] = p
	}
	g.ids = maps.Keys(g.people)
	sort.Strings(g.ids)

	for _, r := range relationships {
		if _, ok := g.people[r.FromID]; !ok {
			continue
		}
		if _, ok := g.people[r.ToID]; !ok {
			continue
		}
		if r.Strength != nil {
			g.weighted = true
		}
		w := r.EffectiveWeight()
		g.addArc(Arc{From: r.FromID, To: r.ToID, Kind: r.Kind, Weight: w})
		if r.Bidirectional {
			g.addArc(Arc{From: r.ToID, To: r.FromID, Kind: r.Kind, Weight: w})
		}
	}

	for id := range g.out {
		arcs := g.out[id]
		sort.Slice(arcs, func(i, j int) bool {
			if arcs[i].To != arcs[j].To {
				return arcs[i].To < arcs[j].To
			}
			return arcs[i].Kind < arcs[j].Kind
		})
	}
	for id := range g.in {
		arcs := g.in[id]
		sort.Slice(arcs, func(i, j int) bool {
			if arcs[i].From != arcs[j].From {
				return arcs[i].From < arcs[j].From
			}
			return arcs[i].Kind < arcs[j].Kind
		})
	}
	return g
}

func (g *Graph) addArc(a Arc) {
	g.out[a.From] = append(g.out[a.From], a)
	g.in[a.To] = append(g.in[a.To], a)
	g.arcCount++
	pair := [2]string{a.From, a.To}
	if w, ok := g.pairW[pair]; !ok || a.Weight > w {
		g.pairW[pair] = a.Weight
	}
}

// Order returns the number of nodes.
func (g *Graph) Order() int { return len(g.ids) }

// SizeArcs returns the number of directed arcs after bidirectional
// expansion.
func (g *Graph) SizeArcs() int { return g.arcCount }

// Weighted reports whether any relationship carried an explicit
// strength score.
func (g *Graph) Weighted() bool { return g.weighted }

// NodeIDs returns all person IDs in sorted order. Callers must not
// modify the returned slice.
func (g *Graph) NodeIDs() []string { return g.ids }

// Has reports whether the person is part of the snapshot.
func (g *Graph) Has(id string) bool {
	_, ok := g.people[id]
	return ok
}

// Person returns the person for id, or nil when absent.
func (g *Graph) Person(id string) *model.Person { return g.people[id] }

// Arcs returns outgoing arcs of id, sorted by destination.
func (g *Graph) Arcs(id string) []Arc { return g.out[id] }

// InArcs returns incoming arcs of id, sorted by origin.
func (g *Graph) InArcs(id string) []Arc { return g.in[id] }

// Degree returns in-degree + out-degree of id.
func (g *Graph) Degree(id string) int { return len(g.out[id]) + len(g.in[id]) }

// HasArc reports whether a directed arc from->to exists.
func (g *Graph) HasArc(from, to string) bool {
	_, ok := g.pairW[[2]string{from, to}]
	return ok
}

// Connected reports whether the two persons share an arc in either
// direction.
func (g *Graph) Connected(a, b string) bool {
	return g.HasArc(a, b) || g.HasArc(b, a)
}

// Weight returns the best arc weight from->to, or 0 when no arc exists.
// When several relationship kinds connect the same ordered pair the
// highest strength wins.
func (g *Graph) Weight(from, to string) float64 {
	return g.pairW[[2]string{from, to}]
}

// Neighbors returns the unique undirected neighbours of id, sorted.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	for _, a := range g.out[id] {
		if a.To != id {
			seen[a.To] = true
		}
	}
	for _, a := range g.in[id] {
		if a.From != id {
			seen[a.From] = true
		}
	}
	out := maps.Keys(seen)
	sort.Strings(out)
	return out
}

// UndirectedEdges returns one edge per connected pair, sorted by
// (A, B). When several relationship kinds connect a pair, the edge
// carries the kind and weight of the strongest.
func (g *Graph) UndirectedEdges() []Edge {
	best := make(map[[2]string]Edge)
	for _, id := range g.ids {
		for _, arc := range g.out[id] {
			a, b := arc.From, arc.To
			if a > b {
				a, b = b, a
			}
			k := [2]string{a, b}
			if e, ok := best[k]; !ok || arc.Weight > e.Weight {
				best[k] = Edge{A: a, B: b, Kind: arc.Kind, Weight: arc.Weight}
			}
		}
	}
	edges := make([]Edge, 0, len(best))
	for _, e := range best {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// Departments groups node IDs by department, each group sorted.
// Persons without a department fall under the empty key.
func (g *Graph) Departments() map[string][]string {
	out := make(map[string][]string)
	for _, id := range g.ids {
		d := g.people[id].Department
		out[d] = append(out[d], id)
	}
	return out
}

// Clone returns an independent copy sharing no mutable state with the
// receiver. Person records are deep-copied.
func (g *Graph) Clone() *Graph {
	people := make([]*model.Person, 0, len(g.ids))
	for _, id := range g.ids {
		people = append(people, g.people[id].Clone())
	}
	clone := &Graph{
		people: make(map[string]*model.Person, len(people)),
		ids:    append([]string(nil), g.ids...),
		out:    make(map[string][]Arc, len(g.out)),
		in:     make(map[string][]Arc, len(g.in)),
		pairW:  make(map[[2]string]float64, len(g.pairW)),

		arcCount: g.arcCount,
		weighted: g.weighted,
	}
	for _, p := range people {
		clone.people[p.ID] = p
	}
	for id, arcs := range g.out {
		clone.out[id] = append([]Arc(nil), arcs...)
	}
	for id, arcs := range g.in {
		clone.in[id] = append([]Arc(nil), arcs...)
	}
	for k, v := range g.pairW {
		clone.pairW[k] = v
	}
	return clone
}
