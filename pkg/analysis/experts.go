package analysis

import (
	"context"
	"sort"
	"strings"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// Expert is one match for an expertise search, ranked by how connected
// they are so the most approachable expert surfaces first.
type Expert struct {
	PersonID   string  `json:"person_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Degree     float64 `json:"degree"`
}

// FindExperts returns everyone in the snapshot whose expertise matches
// the area, case-insensitive substring match, sorted by descending
// degree centrality then ascending ID. An empty area matches nobody.
func FindExperts(g *graph.Graph, area string) []Expert {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil
	}
	degree := DegreeCentrality(g)
	var out []Expert
	for _, id := range g.NodeIDs() {
		p := g.Person(id)
		if !p.HasExpertise(area) {
			continue
		}
		out = append(out, Expert{
			PersonID:   id,
			Name:       p.Name,
			Department: p.Department,
			Degree:     degree[id],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Degree != out[j].Degree {
			return out[i].Degree > out[j].Degree
		}
		return out[i].PersonID < out[j].PersonID
	})
	return out
}

// ExpertiseCluster groups the people sharing one expertise area.
type ExpertiseCluster struct {
	Area    string   `json:"area"`
	Members []string `json:"members"`
}

// ExpertiseClusters groups people by normalized expertise area,
// largest cluster first, ties alphabetically. Areas held by a single
// person are skipped: one person is not a cluster.
func ExpertiseClusters(ctx context.Context, g *graph.Graph) ([]ExpertiseCluster, error) {
	byArea := make(map[string][]string)
	for _, id := range g.NodeIDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, area := range g.Person(id).Expertise {
			key := strings.ToLower(strings.TrimSpace(area))
			if key == "" {
				continue
			}
			byArea[key] = append(byArea[key], id)
		}
	}
	out := make([]ExpertiseCluster, 0, len(byArea))
	for area, members := range byArea {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		out = append(out, ExpertiseCluster{Area: area, Members: members})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Members) != len(out[j].Members) {
			return len(out[i].Members) > len(out[j].Members)
		}
		return out[i].Area < out[j].Area
	})
	return out, nil
}
