// Package analysis implements the graph analysis engine: centrality
// metrics, community and silo detection, bridge identification and
// connection recommendations. Every function here is a pure function
// of an immutable graph snapshot; no state persists between calls, so
// results are deterministic for identical input.
package analysis

import (
	"fmt"
	"sort"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// Warning flags a degraded (best-effort) part of a result.
type Warning string

// WarnNotConverged marks an eigenvector computation that hit the
// iteration cap before reaching tolerance. The attached scores are the
// best estimate, not garbage, so the result is usable for ranking.
const WarnNotConverged Warning = "eigenvector centrality did not converge within the iteration cap"

// PersonNotFoundError reports that a requested person is absent from
// the materialized scope.
type PersonNotFoundError struct {
	PersonID string
}

func (e *PersonNotFoundError) Error() string {
	return fmt.Sprintf("person %s not found in materialized graph", e.PersonID)
}

// weightedNeighbor is one undirected adjacency entry. Length is the
// effective traversal distance (inverse weight): stronger relationships
// are shorter hops.
type weightedNeighbor struct {
	idx    int
	weight float64
	length float64
}

// adjacency is a dense undirected view of a graph snapshot, indexed by
// the graph's stable node order. All traversal algorithms run on this
// representation so their iteration order is fixed.
type adjacency struct {
	ids  []string
	idx  map[string]int
	nbrs [][]weightedNeighbor
}

// buildAdjacency flattens the graph into index space. Arcs in both
// directions merge into one undirected entry keeping the best weight.
func buildAdjacency(g *graph.Graph) *adjacency {
	ids := g.NodeIDs()
	a := &adjacency{
		ids:  ids,
		idx:  make(map[string]int, len(ids)),
		nbrs: make([][]weightedNeighbor, len(ids)),
	}
	for i, id := range ids {
		a.idx[id] = i
	}
	for i, id := range ids {
		best := make(map[int]float64)
		for _, arc := range g.Arcs(id) {
			j := a.idx[arc.To]
			if j == i {
				continue
			}
			if w, ok := best[j]; !ok || arc.Weight > w {
				best[j] = arc.Weight
			}
		}
		for _, arc := range g.InArcs(id) {
			j := a.idx[arc.From]
			if j == i {
				continue
			}
			if w, ok := best[j]; !ok || arc.Weight > w {
				best[j] = arc.Weight
			}
		}
		nbrs := make([]weightedNeighbor, 0, len(best))
		for j, w := range best {
			length := 1.0
			if w > 0 {
				length = 1.0 / w
			}
			nbrs = append(nbrs, weightedNeighbor{idx: j, weight: w, length: length})
		}
		sort.Slice(nbrs, func(x, y int) bool { return nbrs[x].idx < nbrs[y].idx })
		a.nbrs[i] = nbrs
	}
	return a
}

// undirectedEdgeCount returns the number of unique undirected edges.
func (a *adjacency) undirectedEdgeCount() int {
	total := 0
	for _, nbrs := range a.nbrs {
		total += len(nbrs)
	}
	return total / 2
}
