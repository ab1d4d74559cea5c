package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// connectorPercentile is the betweenness cut above which a person
// counts as a connector even when removing them would not split the
// graph.
const connectorPercentile = 0.90

// Connector is a person holding the network together, either as a
// literal cut vertex or by carrying an outsized share of shortest
// paths.
type Connector struct {
	PersonID          string  `json:"person_id"`
	Betweenness       float64 `json:"betweenness"`
	ArticulationPoint bool    `json:"articulation_point"`
}

// ArticulationPoints returns the people whose removal disconnects some
// part of the snapshot, sorted by ID. Uses Tarjan's low-link DFS over
// the undirected view.
func ArticulationPoints(g *graph.Graph) []string {
	adj := buildAdjacency(g)
	n := len(adj.ids)
	disc := make([]int, n)
	low := make([]int, n)
	parent := make([]int, n)
	isCut := make([]bool, n)
	for i := range disc {
		disc[i] = -1
		parent[i] = -1
	}
	timer := 0

	// Iterative DFS, one frame per node with a neighbor cursor, to
	// survive deep chains without blowing the stack.
	type frame struct {
		node int
		next int
	}
	for start := 0; start < n; start++ {
		if disc[start] != -1 {
			continue
		}
		rootChildren := 0
		stack := []frame{{node: start}}
		disc[start] = timer
		low[start] = timer
		timer++
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(adj.nbrs[f.node]) {
				nb := adj.nbrs[f.node][f.next].idx
				f.next++
				if disc[nb] == -1 {
					parent[nb] = f.node
					if f.node == start {
						rootChildren++
					}
					disc[nb] = timer
					low[nb] = timer
					timer++
					stack = append(stack, frame{node: nb})
				} else if nb != parent[f.node] && disc[nb] < low[f.node] {
					low[f.node] = disc[nb]
				}
				continue
			}
			stack = stack[:len(stack)-1]
			p := parent[f.node]
			if p == -1 {
				continue
			}
			if low[f.node] < low[p] {
				low[p] = low[f.node]
			}
			if p != start && low[f.node] >= disc[p] {
				isCut[p] = true
			}
		}
		isCut[start] = rootChildren > 1
	}

	var out []string
	for i, cut := range isCut {
		if cut {
			out = append(out, adj.ids[i])
		}
	}
	sort.Strings(out)
	return out
}

// FindConnectors identifies the people bridging otherwise separate
// parts of the network: every articulation point, plus anyone whose
// betweenness reaches the 90th percentile. Results sort by descending
// betweenness, ties by ascending ID.
func FindConnectors(ctx context.Context, g *graph.Graph) ([]Connector, error) {
	betweenness, err := BetweennessCentrality(ctx, g)
	if err != nil {
		return nil, err
	}
	threshold := percentile(betweenness, connectorPercentile)

	cuts := make(map[string]bool)
	for _, id := range ArticulationPoints(g) {
		cuts[id] = true
	}

	var out []Connector
	for _, id := range g.NodeIDs() {
		b := betweenness[id]
		if !cuts[id] && (b < threshold || b == 0) {
			continue
		}
		out = append(out, Connector{
			PersonID:          id,
			Betweenness:       b,
			ArticulationPoint: cuts[id],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Betweenness != out[j].Betweenness {
			return out[i].Betweenness > out[j].Betweenness
		}
		return out[i].PersonID < out[j].PersonID
	})
	return out, nil
}

// percentile returns the value at rank p (0..1) over the map values,
// using nearest-rank on the sorted values. Empty input yields +Inf so
// nothing passes the cut.
func percentile(values map[string]float64, p float64) float64 {
	if len(values) == 0 {
		return math.Inf(1)
	}
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		sorted = append(sorted, v)
	}
	sort.Float64s(sorted)
	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
