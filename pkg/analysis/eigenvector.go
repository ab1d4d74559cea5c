package analysis

import (
	"context"
	"math"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// EigenvectorOptions controls the power iteration.
type EigenvectorOptions struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultEigenvectorOptions caps iteration at 100 rounds with an L1
// convergence tolerance of 1e-6.
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// EigenvectorResult carries eigenvector centrality scores plus
// convergence bookkeeping.
type EigenvectorResult struct {
	Scores     map[string]float64
	Iterations int
	Converged  bool
	Warning    Warning
}

// EigenvectorCentrality scores each person by the importance of their
// neighbors, via power iteration on the weighted adjacency matrix
// shifted by the identity. The shift keeps bipartite structures from
// oscillating without changing the ranking. When the iteration cap is
// hit before the tolerance, the result keeps the last estimate and
// carries WarnNotConverged instead of failing.
func EigenvectorCentrality(ctx context.Context, g *graph.Graph, opts EigenvectorOptions) (*EigenvectorResult, error) {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultEigenvectorOptions().MaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultEigenvectorOptions().Tolerance
	}
	adj := buildAdjacency(g)
	n := len(adj.ids)
	res := &EigenvectorResult{Scores: make(map[string]float64, n)}
	if n == 0 {
		res.Converged = true
		return res, nil
	}

	vec := make([]float64, n)
	next := make([]float64, n)
	for i := range vec {
		vec[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Iterations = iter + 1
		for i := range next {
			sum := vec[i]
			for _, nb := range adj.nbrs[i] {
				sum += nb.weight * vec[nb.idx]
			}
			next[i] = sum
		}
		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		diff := 0.0
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - vec[i])
		}
		vec, next = next, vec
		if diff < opts.Tolerance {
			res.Converged = true
			break
		}
	}
	if !res.Converged {
		res.Warning = WarnNotConverged
	}
	for i, id := range adj.ids {
		// Isolated people have no influence to inherit; the shifted
		// iteration leaves them a decaying residue, so pin them to 0.
		if len(adj.nbrs[i]) == 0 {
			res.Scores[id] = 0
			continue
		}
		res.Scores[id] = vec[i]
	}
	return res, nil
}
