package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

// Recommendation score weights. Shared expertise dominates, mutual
// contacts make an introduction easy, and crossing a department line
// earns a flat bonus for the information diversity it brings.
const (
	expertiseScoreWeight = 0.45
	neighborScoreWeight  = 0.35
	crossDeptBonus       = 0.20
)

// Recommendation proposes one new connection.
type Recommendation struct {
	PersonID string   `json:"person_id"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

// RecommendOptions controls recommendation generation.
type RecommendOptions struct {
	Limit int
}

// DefaultRecommendOptions returns at most five recommendations.
func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{Limit: 5}
}

// RecommendConnections suggests people the subject should meet:
// everyone within two hops who is not already a direct connection,
// scored by expertise overlap, shared contacts and department
// diversity. Results sort by descending score, ties by ascending
// candidate ID. Returns *PersonNotFoundError when the subject is
// outside the snapshot.
func RecommendConnections(ctx context.Context, g *graph.Graph, personID string, opts RecommendOptions) ([]Recommendation, error) {
	if !g.Has(personID) {
		return nil, &PersonNotFoundError{PersonID: personID}
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultRecommendOptions().Limit
	}
	subject := g.Person(personID)
	direct := make(map[string]bool)
	for _, nbr := range g.Neighbors(personID) {
		direct[nbr] = true
	}

	var recs []Recommendation
	for _, candidateID := range twoHopCandidates(g, personID, direct) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidate := g.Person(candidateID)
		common := commonNeighbors(g, personID, candidateID)

		expertise := expertiseJaccard(subject.Expertise, candidate.Expertise)
		neighborRatio := commonNeighborRatio(g, personID, candidateID, len(common))
		score := expertiseScoreWeight*expertise + neighborScoreWeight*neighborRatio
		crossDept := subject.Department != "" && candidate.Department != "" &&
			subject.Department != candidate.Department
		if crossDept {
			score += crossDeptBonus
		}
		if score == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			PersonID: candidateID,
			Score:    score,
			Reasons:  buildReasons(g, subject, candidate, common, expertise, crossDept),
		})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].PersonID < recs[j].PersonID
	})
	if len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}
	return recs, nil
}

// twoHopCandidates returns, sorted, every node reachable in exactly one
// or two undirected hops that is neither the subject nor a direct
// connection. In practice only the two-hop ring survives the filter.
func twoHopCandidates(g *graph.Graph, personID string, direct map[string]bool) []string {
	seen := map[string]bool{personID: true}
	var out []string
	for _, first := range g.Neighbors(personID) {
		seen[first] = true
	}
	for _, first := range g.Neighbors(personID) {
		for _, second := range g.Neighbors(first) {
			if seen[second] || direct[second] {
				continue
			}
			seen[second] = true
			out = append(out, second)
		}
	}
	sort.Strings(out)
	return out
}

// commonNeighbors returns the sorted shared contacts of two people.
func commonNeighbors(g *graph.Graph, a, b string) []string {
	aSet := make(map[string]bool)
	for _, nbr := range g.Neighbors(a) {
		aSet[nbr] = true
	}
	var common []string
	for _, nbr := range g.Neighbors(b) {
		if aSet[nbr] {
			common = append(common, nbr)
		}
	}
	sort.Strings(common)
	return common
}

// commonNeighborRatio normalizes the shared-contact count by the
// smaller neighborhood, so a well-connected candidate does not drown
// out a newcomer with the same mutual contacts.
func commonNeighborRatio(g *graph.Graph, a, b string, common int) float64 {
	na := len(g.Neighbors(a))
	nb := len(g.Neighbors(b))
	min := na
	if nb < min {
		min = nb
	}
	if min == 0 {
		return 0
	}
	return float64(common) / float64(min)
}

// expertiseJaccard is the Jaccard similarity of two expertise lists,
// case-insensitive.
func expertiseJaccard(a, b []string) float64 {
	aSet := make(map[string]bool, len(a))
	for _, s := range a {
		aSet[strings.ToLower(strings.TrimSpace(s))] = true
	}
	delete(aSet, "")
	bSet := make(map[string]bool, len(b))
	for _, s := range b {
		bSet[strings.ToLower(strings.TrimSpace(s))] = true
	}
	delete(bSet, "")
	if len(aSet) == 0 && len(bSet) == 0 {
		return 0
	}
	common := 0
	for s := range aSet {
		if bSet[s] {
			common++
		}
	}
	union := len(aSet) + len(bSet) - common
	return float64(common) / float64(union)
}

// buildReasons explains a recommendation in terms a reader can act on,
// naming at most two mutual contacts.
func buildReasons(g *graph.Graph, subject, candidate *model.Person, common []string, expertise float64, crossDept bool) []string {
	var reasons []string
	if len(common) > 0 {
		names := make([]string, 0, 2)
		for _, id := range common {
			names = append(names, g.Person(id).Name)
			if len(names) == 2 {
				break
			}
		}
		reasons = append(reasons, fmt.Sprintf("%d mutual connection(s), including %s",
			len(common), strings.Join(names, " and ")))
	}
	if expertise > 0 {
		reasons = append(reasons, "shared expertise areas")
	}
	if crossDept {
		reasons = append(reasons, fmt.Sprintf("bridges %s and %s", subject.Department, candidate.Department))
	}
	return reasons
}
