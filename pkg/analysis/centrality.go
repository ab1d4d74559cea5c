package analysis

import (
	"container/heap"
	"context"
	"math"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// distEpsilon bounds float comparison when deciding whether two paths
// to the same node are equally short.
const distEpsilon = 1e-12

// DegreeCentrality returns, for each person, their count of distinct
// connected people normalized by n-1. Counting neighbors rather than
// arcs keeps a bidirectional relationship worth the same as a directed
// one. A single-node graph yields 0 for that node.
func DegreeCentrality(g *graph.Graph) map[string]float64 {
	ids := g.NodeIDs()
	scores := make(map[string]float64, len(ids))
	if len(ids) <= 1 {
		for _, id := range ids {
			scores[id] = 0
		}
		return scores
	}
	norm := float64(len(ids) - 1)
	for _, id := range ids {
		scores[id] = float64(len(g.Neighbors(id))) / norm
	}
	return scores
}

// ClosenessCentrality returns, per person, the inverse of the mean
// shortest-path distance to the people it can reach. Unreachable nodes
// do not count against the score; a person with no connections at all
// scores 0.
func ClosenessCentrality(ctx context.Context, g *graph.Graph) (map[string]float64, error) {
	adj := buildAdjacency(g)
	scores := make(map[string]float64, len(adj.ids))
	for src := range adj.ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sp := dijkstraFrom(adj, src)
		reachable := 0
		total := 0.0
		for i, d := range sp.dist {
			if i == src || math.IsInf(d, 1) {
				continue
			}
			reachable++
			total += d
		}
		if reachable == 0 || total == 0 {
			scores[adj.ids[src]] = 0
			continue
		}
		scores[adj.ids[src]] = float64(reachable) / total
	}
	return scores, nil
}

// BetweennessCentrality returns, per person, the fraction of pairwise
// shortest paths passing through them, via Brandes accumulation over
// single-source shortest path trees. Weighted graphs use inverse
// relationship strength as distance, so strong ties route more paths.
func BetweennessCentrality(ctx context.Context, g *graph.Graph) (map[string]float64, error) {
	adj := buildAdjacency(g)
	n := len(adj.ids)
	raw := make([]float64, n)
	for src := 0; src < n; src++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sp := dijkstraFrom(adj, src)
		delta := make([]float64, n)
		// Dependency accumulation in reverse finish order.
		for i := len(sp.order) - 1; i >= 0; i-- {
			w := sp.order[i]
			for _, v := range sp.preds[w] {
				delta[v] += (sp.sigma[v] / sp.sigma[w]) * (1 + delta[w])
			}
			if w != src {
				raw[w] += delta[w]
			}
		}
	}
	scores := make(map[string]float64, n)
	if n <= 2 {
		for _, id := range adj.ids {
			scores[id] = 0
		}
		return scores, nil
	}
	norm := float64(n-1) * float64(n-2)
	for i, id := range adj.ids {
		scores[id] = raw[i] / norm
	}
	return scores, nil
}

// shortestPaths holds one single-source Dijkstra pass: distances, path
// counts, shortest-path predecessors, and nodes in settle order.
type shortestPaths struct {
	dist  []float64
	sigma []float64
	preds [][]int
	order []int
}

// dijkstraFrom runs single-source shortest paths counting all shortest
// paths. On the default unit weights this degenerates to BFS, so
// unweighted and weighted graphs share one code path. Ties in the
// queue break on node index to keep the settle order stable.
func dijkstraFrom(adj *adjacency, src int) *shortestPaths {
	n := len(adj.ids)
	sp := &shortestPaths{
		dist:  make([]float64, n),
		sigma: make([]float64, n),
		preds: make([][]int, n),
		order: make([]int, 0, n),
	}
	for i := range sp.dist {
		sp.dist[i] = math.Inf(1)
	}
	sp.dist[src] = 0
	sp.sigma[src] = 1

	settled := make([]bool, n)
	pq := &distQueue{{node: src, dist: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distItem)
		if settled[cur.node] {
			continue
		}
		settled[cur.node] = true
		sp.order = append(sp.order, cur.node)
		for _, nb := range adj.nbrs[cur.node] {
			alt := sp.dist[cur.node] + nb.length
			switch {
			case alt < sp.dist[nb.idx]-distEpsilon:
				sp.dist[nb.idx] = alt
				sp.sigma[nb.idx] = sp.sigma[cur.node]
				sp.preds[nb.idx] = append(sp.preds[nb.idx][:0], cur.node)
				heap.Push(pq, distItem{node: nb.idx, dist: alt})
			case math.Abs(alt-sp.dist[nb.idx]) <= distEpsilon:
				sp.sigma[nb.idx] += sp.sigma[cur.node]
				sp.preds[nb.idx] = append(sp.preds[nb.idx], cur.node)
			}
		}
	}
	return sp
}

type distItem struct {
	node int
	dist float64
}

type distQueue []distItem

func (q distQueue) Len() int { return len(q) }

func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distQueue) Push(x any) { *q = append(*q, x.(distItem)) }

func (q *distQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
