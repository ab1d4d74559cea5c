package analysis

import (
	"context"
	"sort"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// Silo thresholds: a department qualifies when under a tenth of the
// edges touching it cross the department boundary, and it is big
// enough that the isolation is organizational rather than incidental.
const (
	siloExternalRatioMax = 0.10
	siloMinMembers       = 3
)

// DepartmentStats summarizes one department's connectivity.
type DepartmentStats struct {
	Department      string   `json:"department"`
	Members         []string `json:"members"`
	InternalEdges   int      `json:"internal_edges"`
	ExternalEdges   int      `json:"external_edges"`
	InternalDensity float64  `json:"internal_density"`
	ExternalRatio   float64  `json:"external_ratio"`
}

// Silo is a department flagged as isolated, with the members best
// placed to bridge it outward.
type Silo struct {
	DepartmentStats
	BridgeCandidates []string `json:"bridge_candidates"`
}

// DepartmentConnectivity counts internal and cross-department edges
// per department, sorted by department name. The external ratio is
// crossing edges over all edges touching the department; internal
// density is internal edges over the pairs possible among members.
// People without a department are grouped under the empty string only
// for ratio purposes and never flagged as a silo.
func DepartmentConnectivity(g *graph.Graph) []DepartmentStats {
	byDept := make(map[string]*DepartmentStats)
	for _, id := range g.NodeIDs() {
		p := g.Person(id)
		st, ok := byDept[p.Department]
		if !ok {
			st = &DepartmentStats{Department: p.Department}
			byDept[p.Department] = st
		}
		st.Members = append(st.Members, id)
	}
	for _, e := range g.UndirectedEdges() {
		da := g.Person(e.A).Department
		db := g.Person(e.B).Department
		if da == db {
			byDept[da].InternalEdges++
			continue
		}
		byDept[da].ExternalEdges++
		byDept[db].ExternalEdges++
	}
	names := make([]string, 0, len(byDept))
	for name := range byDept {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]DepartmentStats, 0, len(names))
	for _, name := range names {
		st := byDept[name]
		sort.Strings(st.Members)
		if total := st.InternalEdges + st.ExternalEdges; total > 0 {
			st.ExternalRatio = float64(st.ExternalEdges) / float64(total)
		}
		if n := len(st.Members); n > 1 {
			st.InternalDensity = float64(st.InternalEdges) / (float64(n) * float64(n-1) / 2)
		}
		out = append(out, *st)
	}
	return out
}

// DetectSilos flags departments whose external connectivity ratio
// falls below the silo threshold. Each silo lists up to three bridge
// candidates: the members with the highest betweenness centrality that
// already hold at least one cross-department edge. A silo whose
// members all stay inside the department has no candidates.
func DetectSilos(ctx context.Context, g *graph.Graph) ([]Silo, error) {
	var silos []Silo
	var betweenness map[string]float64
	for _, st := range DepartmentConnectivity(g) {
		if st.Department == "" || len(st.Members) < siloMinMembers {
			continue
		}
		if st.InternalEdges+st.ExternalEdges == 0 || st.ExternalRatio >= siloExternalRatioMax {
			continue
		}
		if betweenness == nil {
			var err error
			betweenness, err = BetweennessCentrality(ctx, g)
			if err != nil {
				return nil, err
			}
		}
		silos = append(silos, Silo{
			DepartmentStats:  st,
			BridgeCandidates: bridgeCandidates(g, st, betweenness),
		})
	}
	return silos, nil
}

// bridgeCandidates picks the silo members with at least one
// cross-department edge, ranked by betweenness descending, ties on
// ascending ID. At most three candidates are returned.
func bridgeCandidates(g *graph.Graph, st DepartmentStats, betweenness map[string]float64) []string {
	candidates := make([]string, 0, len(st.Members))
	for _, id := range st.Members {
		for _, nbr := range g.Neighbors(id) {
			if g.Person(nbr).Department != st.Department {
				candidates = append(candidates, id)
				break
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		bi, bj := betweenness[candidates[i]], betweenness[candidates[j]]
		if bi != bj {
			return bi > bj
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}
