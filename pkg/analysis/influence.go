package analysis

import (
	"container/heap"
	"context"
	"sort"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// Influence weights blend the four centrality measures into one
// composite score. Betweenness and eigenvector dominate because
// brokerage and connection quality matter more than raw contact count.
const (
	degreeWeight      = 0.25
	betweennessWeight = 0.35
	closenessWeight   = 0.15
	eigenvectorWeight = 0.25
)

// PersonMetrics bundles every per-person metric in one row.
type PersonMetrics struct {
	PersonID    string  `json:"person_id"`
	Degree      float64 `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Eigenvector float64 `json:"eigenvector"`
	Influence   float64 `json:"influence"`
}

// MetricsResult is the full centrality sweep over one snapshot.
type MetricsResult struct {
	People   map[string]*PersonMetrics `json:"people"`
	Density  float64                   `json:"density"`
	Warnings []Warning                 `json:"warnings,omitempty"`
}

// ComputeAllMetrics runs every centrality measure over the snapshot and
// derives the composite influence score. Non-fatal degradation, such
// as eigenvector hitting its iteration cap, surfaces in Warnings
// rather than as an error.
func ComputeAllMetrics(ctx context.Context, g *graph.Graph) (*MetricsResult, error) {
	degree := DegreeCentrality(g)
	betweenness, err := BetweennessCentrality(ctx, g)
	if err != nil {
		return nil, err
	}
	closeness, err := ClosenessCentrality(ctx, g)
	if err != nil {
		return nil, err
	}
	eigen, err := EigenvectorCentrality(ctx, g, DefaultEigenvectorOptions())
	if err != nil {
		return nil, err
	}

	res := &MetricsResult{
		People:  make(map[string]*PersonMetrics, g.Order()),
		Density: NetworkDensity(g),
	}
	if eigen.Warning != "" {
		res.Warnings = append(res.Warnings, eigen.Warning)
	}
	for _, id := range g.NodeIDs() {
		pm := &PersonMetrics{
			PersonID:    id,
			Degree:      degree[id],
			Betweenness: betweenness[id],
			Closeness:   closeness[id],
			Eigenvector: eigen.Scores[id],
		}
		pm.Influence = degreeWeight*pm.Degree +
			betweennessWeight*pm.Betweenness +
			closenessWeight*pm.Closeness +
			eigenvectorWeight*pm.Eigenvector
		res.People[id] = pm
	}
	return res, nil
}

// NetworkDensity is the ratio of undirected edges present to edges
// possible. Graphs with fewer than two people have density 0.
func NetworkDensity(g *graph.Graph) float64 {
	n := g.Order()
	if n < 2 {
		return 0
	}
	possible := float64(n) * float64(n-1) / 2
	return float64(len(g.UndirectedEdges())) / possible
}

// RankedPerson is one entry in a top-N ranking.
type RankedPerson struct {
	PersonID string  `json:"person_id"`
	Score    float64 `json:"score"`
}

// TopInfluential returns the topN people by influence score,
// descending, ties broken by ascending person ID. topN <= 0 ranks
// everyone.
func TopInfluential(metrics *MetricsResult, topN int) []RankedPerson {
	if topN <= 0 || topN > len(metrics.People) {
		topN = len(metrics.People)
	}
	ids := make([]string, 0, len(metrics.People))
	for id := range metrics.People {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Min-heap of the best topN seen so far; the weakest entry sits
	// on top and gets evicted by anything stronger.
	h := &rankHeap{}
	for _, id := range ids {
		entry := RankedPerson{PersonID: id, Score: metrics.People[id].Influence}
		if h.Len() < topN {
			heap.Push(h, entry)
			continue
		}
		if rankLess((*h)[0], entry) {
			heap.Pop(h)
			heap.Push(h, entry)
		}
	}
	out := make([]RankedPerson, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(RankedPerson)
	}
	return out
}

// rankLess orders a below b when a ranks worse: lower score, or equal
// score with higher ID.
func rankLess(a, b RankedPerson) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.PersonID > b.PersonID
}

type rankHeap []RankedPerson

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return rankLess(h[i], h[j]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *rankHeap) Push(x any)        { *h = append(*h, x.(RankedPerson)) }
func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
