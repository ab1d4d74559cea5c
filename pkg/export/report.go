package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/analysis"
	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
)

// ReportNode is one person row in an analysis export, carrying the
// full centrality sweep. Contact fields never appear here.
type ReportNode struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Role       string                  `json:"role,omitempty"`
	Department string                  `json:"department,omitempty"`
	Metrics    *analysis.PersonMetrics `json:"metrics"`
}

// ReportEdge is one undirected edge row.
type ReportEdge struct {
	From   string                 `json:"from"`
	To     string                 `json:"to"`
	Kind   model.RelationshipKind `json:"kind"`
	Weight float64                `json:"weight"`
}

// ReportPayload is the analysis export document: per-person metrics,
// the deduplicated edge list, communities, silos and connection
// recommendations for every person in the snapshot.
type ReportPayload struct {
	Version         int                                  `json:"version"`
	GeneratedAt     time.Time                            `json:"generated_at"`
	Nodes           []ReportNode                         `json:"nodes"`
	Edges           []ReportEdge                         `json:"edges"`
	Communities     []analysis.Community                 `json:"communities"`
	Modularity      float64                              `json:"modularity"`
	Silos           []analysis.Silo                      `json:"silos,omitempty"`
	Recommendations map[string][]analysis.Recommendation `json:"recommendations,omitempty"`
	Warnings        []analysis.Warning                   `json:"warnings,omitempty"`
}

// BuildReportPayload runs the full analysis sweep over a snapshot and
// assembles the export document. Node and edge ordering follows the
// snapshot's sorted order, so identical input produces an identical
// document apart from the timestamp.
func BuildReportPayload(ctx context.Context, g *graph.Graph) (*ReportPayload, error) {
	metrics, err := analysis.ComputeAllMetrics(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}
	comms, err := analysis.DetectCommunities(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("detect communities: %w", err)
	}
	silos, err := analysis.DetectSilos(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("detect silos: %w", err)
	}

	payload := &ReportPayload{
		Version:         FormatVersion,
		GeneratedAt:     time.Now().UTC(),
		Nodes:           make([]ReportNode, 0, g.Order()),
		Communities:     comms.Communities,
		Modularity:      comms.Modularity,
		Silos:           silos,
		Recommendations: make(map[string][]analysis.Recommendation),
		Warnings:        metrics.Warnings,
	}
	for _, id := range g.NodeIDs() {
		p := g.Person(id)
		payload.Nodes = append(payload.Nodes, ReportNode{
			ID:         id,
			Name:       p.Name,
			Role:       p.Role,
			Department: p.Department,
			Metrics:    metrics.People[id],
		})
		recs, err := analysis.RecommendConnections(ctx, g, id, analysis.DefaultRecommendOptions())
		if err != nil {
			return nil, fmt.Errorf("recommend for %s: %w", id, err)
		}
		if len(recs) > 0 {
			payload.Recommendations[id] = recs
		}
	}
	for _, e := range g.UndirectedEdges() {
		payload.Edges = append(payload.Edges, ReportEdge{
			From:   e.A,
			To:     e.B,
			Kind:   e.Kind,
			Weight: e.Weight,
		})
	}
	return payload, nil
}

// WriteReportJSON streams an indented analysis export document.
func WriteReportJSON(w io.Writer, payload *ReportPayload) error {
	return writeIndented(w, payload)
}
