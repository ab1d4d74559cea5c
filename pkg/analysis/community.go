package analysis

import (
	"context"
	"sort"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// Community is one detected cluster of people. Density is the
// internal edge count over the pairs possible among members;
// singletons have density 0.
type Community struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
	Size    int      `json:"size"`
	Density float64  `json:"density"`
}

// CommunityResult carries the partition and its modularity score.
// NodeCommunity maps every person to the ID of their community.
type CommunityResult struct {
	Communities   []Community    `json:"communities"`
	Modularity    float64        `json:"modularity"`
	NodeCommunity map[string]int `json:"node_community,omitempty"`
}

// DetectCommunities partitions the snapshot by greedy modularity
// agglomeration: every person starts alone, and the connected pair of
// communities with the best modularity gain merges until no merge
// improves the score. Isolated people end up as singletons. Equal-gain
// candidates break ties on the lowest member-ID pair, so the partition
// is stable across runs.
func DetectCommunities(ctx context.Context, g *graph.Graph) (*CommunityResult, error) {
	adj := buildAdjacency(g)
	n := len(adj.ids)
	res := &CommunityResult{}
	if n == 0 {
		return res, nil
	}

	// comm[i] is the community index of node i. anchor[c] is the
	// lowest member ID, used for tie-breaking.
	comm := make([]int, n)
	anchor := make([]string, n)
	alive := make([]bool, n)
	totW := make([]float64, n)
	inW := make([]float64, n)
	for i := range comm {
		comm[i] = i
		anchor[i] = adj.ids[i]
		alive[i] = true
	}

	// between[c] maps peer community -> total weight linking them.
	between := make([]map[int]float64, n)
	m := 0.0
	for i := range adj.nbrs {
		between[i] = make(map[int]float64)
		for _, nb := range adj.nbrs[i] {
			between[i][nb.idx] += nb.weight
			totW[i] += nb.weight
			if i < nb.idx {
				m += nb.weight
			}
		}
	}
	if m == 0 {
		return singletonResult(adj), nil
	}

	twoM := 2 * m
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bestGain := 0.0
		bestA, bestB := -1, -1
		for a := 0; a < n; a++ {
			if !alive[a] {
				continue
			}
			for b, w := range between[a] {
				if b <= a || !alive[b] {
					continue
				}
				gain := w/m - totW[a]*totW[b]/(twoM*twoM/2)
				lo, hi := a, b
				if anchor[hi] < anchor[lo] {
					lo, hi = hi, lo
				}
				if gain > bestGain+distEpsilon ||
					(gain > distEpsilon && sameGain(gain, bestGain) && pairBefore(anchor, lo, hi, bestA, bestB)) {
					bestGain = gain
					bestA, bestB = lo, hi
				}
			}
		}
		if bestA < 0 {
			break
		}
		mergeCommunities(bestA, bestB, alive, between, totW, inW)
		if anchor[bestB] < anchor[bestA] {
			anchor[bestA] = anchor[bestB]
		}
		for i := range comm {
			if comm[i] == bestB {
				comm[i] = bestA
			}
		}
	}

	res.Communities, res.NodeCommunity = assembleCommunities(adj, comm)
	res.Modularity = partitionModularity(adj, comm, m)
	return res, nil
}

// sameGain treats two modularity gains as tied within float noise.
func sameGain(a, b float64) bool {
	d := a - b
	return d < distEpsilon && d > -distEpsilon
}

// pairBefore reports whether the (lo,hi) anchor pair sorts before the
// current best pair.
func pairBefore(anchor []string, lo, hi, bestA, bestB int) bool {
	if bestA < 0 {
		return true
	}
	if anchor[lo] != anchor[bestA] {
		return anchor[lo] < anchor[bestA]
	}
	return anchor[hi] < anchor[bestB]
}

// mergeCommunities folds community b into a, rewiring inter-community
// weights.
func mergeCommunities(a, b int, alive []bool, between []map[int]float64, totW, inW []float64) {
	inW[a] += inW[b] + 2*between[a][b]
	totW[a] += totW[b]
	alive[b] = false
	delete(between[a], b)
	delete(between[b], a)
	for peer, w := range between[b] {
		between[a][peer] += w
		delete(between[peer], b)
		between[peer][a] = between[a][peer]
	}
	between[b] = nil
}

// assembleCommunities converts node assignments into sorted output:
// members sorted by ID, communities ordered by their lowest member,
// with per-community size and density and the reverse node lookup.
func assembleCommunities(adj *adjacency, comm []int) ([]Community, map[string]int) {
	groups := make(map[int][]string)
	for i, c := range comm {
		groups[c] = append(groups[c], adj.ids[i])
	}
	internal := make(map[int]int)
	for i, nbrs := range adj.nbrs {
		for _, nb := range nbrs {
			if i < nb.idx && comm[i] == comm[nb.idx] {
				internal[comm[i]]++
			}
		}
	}
	out := make([]Community, 0, len(groups))
	for c, members := range groups {
		sort.Strings(members)
		size := len(members)
		density := 0.0
		if size > 1 {
			density = float64(internal[c]) / (float64(size) * float64(size-1) / 2)
		}
		out = append(out, Community{Members: members, Size: size, Density: density})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Members[0] < out[j].Members[0] })
	nodeComm := make(map[string]int, len(adj.ids))
	for i := range out {
		out[i].ID = i
		for _, id := range out[i].Members {
			nodeComm[id] = i
		}
	}
	return out, nodeComm
}

// singletonResult is the zero-edge partition: one community per person.
func singletonResult(adj *adjacency) *CommunityResult {
	res := &CommunityResult{NodeCommunity: make(map[string]int, len(adj.ids))}
	for i, id := range adj.ids {
		res.Communities = append(res.Communities, Community{ID: i, Members: []string{id}, Size: 1})
		res.NodeCommunity[id] = i
	}
	return res
}

// partitionModularity scores an assignment against the weighted graph.
func partitionModularity(adj *adjacency, comm []int, m float64) float64 {
	if m == 0 {
		return 0
	}
	inW := make(map[int]float64)
	totW := make(map[int]float64)
	for i, nbrs := range adj.nbrs {
		for _, nb := range nbrs {
			totW[comm[i]] += nb.weight
			if comm[i] == comm[nb.idx] {
				inW[comm[i]] += nb.weight
			}
		}
	}
	q := 0.0
	keys := make([]int, 0, len(totW))
	for c := range totW {
		keys = append(keys, c)
	}
	sort.Ints(keys)
	twoM := 2 * m
	for _, c := range keys {
		q += inW[c]/twoM - (totW[c]/twoM)*(totW[c]/twoM)
	}
	return q
}

// ConnectedComponents returns the undirected components of the
// snapshot, each sorted by member ID, largest first, ties by lowest
// member ID.
func ConnectedComponents(g *graph.Graph) [][]string {
	adj := buildAdjacency(g)
	seen := make([]bool, len(adj.ids))
	var components [][]string
	for start := range adj.ids {
		if seen[start] {
			continue
		}
		var members []string
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, adj.ids[cur])
			for _, nb := range adj.nbrs[cur] {
				if !seen[nb.idx] {
					seen[nb.idx] = true
					queue = append(queue, nb.idx)
				}
			}
		}
		sort.Strings(members)
		components = append(components, members)
	}
	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	return components
}
