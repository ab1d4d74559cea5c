package insight

import (
	"context"
	"sort"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

// DeptPairStat counts interactions between one department pair. Pair
// names are sorted, and a department interacting internally pairs with
// itself.
type DeptPairStat struct {
	DeptA string `json:"dept_a"`
	DeptB string `json:"dept_b"`
	Count int    `json:"count"`
}

// InteractionStats summarizes interaction volume over a window.
type InteractionStats struct {
	WindowDays int            `json:"window_days"`
	Total      int            `json:"total"`
	ByKind     map[string]int `json:"by_kind,omitempty"`
	ByDeptPair []DeptPairStat `json:"by_dept_pair,omitempty"`
	MostActive []ActivePerson `json:"most_active,omitempty"`
}

// ActivePerson is one entry in the interaction-volume ranking.
type ActivePerson struct {
	PersonID string `json:"person_id"`
	Count    int    `json:"count"`
}

// collectInteractionStats tallies interactions recorded for people in
// the snapshot over the window. Department pairs derive from the
// recording person's department crossed with each participant's; an
// interaction without resolvable participants counts within the
// recorder's own department.
func collectInteractionStats(ctx context.Context, st store.Store, g *graph.Graph, window model.Window) (*InteractionStats, error) {
	interactions, err := st.FindInteractionsSince(ctx, window.Since)
	if err != nil {
		return nil, err
	}
	stats := &InteractionStats{
		WindowDays: window.Days(),
		ByKind:     make(map[string]int),
	}
	pairCounts := make(map[[2]string]int)
	perPerson := make(map[string]int)
	names := newParticipantIndex(g)
	for _, ia := range interactions {
		if !g.Has(ia.PersonID) || !window.Contains(ia.OccurredAt) {
			continue
		}
		stats.Total++
		stats.ByKind[string(ia.Kind)]++
		perPerson[ia.PersonID]++
		recorder := g.Person(ia.PersonID)
		paired := false
		for _, participant := range ia.Participants {
			other := names.resolve(participant)
			if other == nil || other.ID == ia.PersonID {
				continue
			}
			perPerson[other.ID]++
			pairCounts[deptPair(recorder.Department, other.Department)]++
			paired = true
		}
		if !paired {
			pairCounts[deptPair(recorder.Department, recorder.Department)]++
		}
	}
	for pair, count := range pairCounts {
		stats.ByDeptPair = append(stats.ByDeptPair, DeptPairStat{DeptA: pair[0], DeptB: pair[1], Count: count})
	}
	sort.Slice(stats.ByDeptPair, func(i, j int) bool {
		a, b := stats.ByDeptPair[i], stats.ByDeptPair[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.DeptA != b.DeptA {
			return a.DeptA < b.DeptA
		}
		return a.DeptB < b.DeptB
	})
	stats.MostActive = rankActive(perPerson, 5)
	return stats, nil
}

// participantIndex maps participant references to snapshot people.
// References are person IDs first, then exact names via a one-time
// index. A name shared by several people is ambiguous and resolves to
// nobody; unknown references resolve to nil rather than failing the
// whole report.
type participantIndex struct {
	g      *graph.Graph
	byName map[string]string
}

func newParticipantIndex(g *graph.Graph) *participantIndex {
	idx := &participantIndex{g: g, byName: make(map[string]string, g.Order())}
	for _, id := range g.NodeIDs() {
		name := g.Person(id).Name
		if _, dup := idx.byName[name]; dup {
			idx.byName[name] = ""
			continue
		}
		idx.byName[name] = id
	}
	return idx
}

func (idx *participantIndex) resolve(ref string) *model.Person {
	if idx.g.Has(ref) {
		return idx.g.Person(ref)
	}
	if id := idx.byName[ref]; id != "" {
		return idx.g.Person(id)
	}
	return nil
}

func deptPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// rankActive orders people by interaction count descending, ties by
// ascending ID, keeping the top limit entries.
func rankActive(perPerson map[string]int, limit int) []ActivePerson {
	out := make([]ActivePerson, 0, len(perPerson))
	for id, count := range perPerson {
		out = append(out, ActivePerson{PersonID: id, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PersonID < out[j].PersonID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
