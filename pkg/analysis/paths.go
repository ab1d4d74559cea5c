package analysis

import (
	"context"

	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// Path length and count caps for collaboration routing. Introductions
// longer than four hops are not actionable.
const (
	maxPathLength = 4
	maxPathCount  = 3
)

// PathResult holds the routes between two people.
type PathResult struct {
	FromID   string     `json:"from_id"`
	ToID     string     `json:"to_id"`
	Shortest []string   `json:"shortest,omitempty"`
	Paths    [][]string `json:"paths,omitempty"`
}

// CollaborationPaths finds how two people could be introduced: the
// hop-shortest route plus up to three simple paths of at most four
// hops, shortest first, ties in lexicographic node order. Both
// endpoints must exist or *PersonNotFoundError is returned. No route
// at all yields an empty result, not an error.
func CollaborationPaths(ctx context.Context, g *graph.Graph, fromID, toID string) (*PathResult, error) {
	if !g.Has(fromID) {
		return nil, &PersonNotFoundError{PersonID: fromID}
	}
	if !g.Has(toID) {
		return nil, &PersonNotFoundError{PersonID: toID}
	}
	res := &PathResult{FromID: fromID, ToID: toID}
	if fromID == toID {
		res.Shortest = []string{fromID}
		res.Paths = [][]string{{fromID}}
		return res, nil
	}

	paths, err := simplePaths(ctx, g, fromID, toID)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return res, nil
	}
	res.Shortest = paths[0]
	if len(paths) > maxPathCount {
		paths = paths[:maxPathCount]
	}
	res.Paths = paths
	return res, nil
}

// simplePaths enumerates simple paths up to the hop cap by depth-first
// search over sorted neighbor lists, then orders them by length and
// lexicographic content. The DFS is bounded: at most maxPathLength
// hops deep, so the worst case stays small even on dense graphs.
func simplePaths(ctx context.Context, g *graph.Graph, fromID, toID string) ([][]string, error) {
	var found [][]string
	onPath := map[string]bool{fromID: true}
	path := []string{fromID}

	var walk func(cur string) error
	walk = func(cur string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(path) > maxPathLength {
			return nil
		}
		for _, nbr := range g.Neighbors(cur) {
			if nbr == toID {
				route := make([]string, len(path)+1)
				copy(route, path)
				route[len(path)] = toID
				found = append(found, route)
				continue
			}
			if onPath[nbr] {
				continue
			}
			onPath[nbr] = true
			path = append(path, nbr)
			if err := walk(nbr); err != nil {
				return err
			}
			path = path[:len(path)-1]
			onPath[nbr] = false
		}
		return nil
	}
	if err := walk(fromID); err != nil {
		return nil, err
	}
	sortPaths(found)
	return found, nil
}

// sortPaths orders routes shortest first, equal lengths by comparing
// node IDs position by position.
func sortPaths(paths [][]string) {
	for i := 1; i < len(paths); i++ {
		for j := i; j > 0 && pathLess(paths[j], paths[j-1]); j-- {
			paths[j], paths[j-1] = paths[j-1], paths[j]
		}
	}
}

func pathLess(a, b []string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
