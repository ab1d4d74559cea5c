// Package insight assembles full network reports: centrality rankings,
// communities, silos, connectors and interaction statistics over one
// materialized snapshot.
package insight

import (
	"errors"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/analysis"
	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
)

// ReportOptions selects what a report covers.
type ReportOptions struct {
	Scope  graph.Scope
	TopN   int
	Window int // interaction window in days, 0 means the default
}

// DefaultReportOptions ranks the top ten people over a 30 day
// interaction window.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{TopN: 10, Window: 30}
}

// Report is one full analysis pass over a snapshot.
type Report struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	Scope       string                      `json:"scope"`
	Empty       bool                        `json:"empty"`
	People      int                         `json:"people"`
	Edges       int                         `json:"edges"`
	Density     float64                     `json:"density"`
	Health      float64                     `json:"health"`
	Influential []analysis.RankedPerson     `json:"influential,omitempty"`
	Communities []analysis.Community        `json:"communities,omitempty"`
	Modularity  float64                     `json:"modularity"`
	Silos       []analysis.Silo             `json:"silos,omitempty"`
	Connectors  []analysis.Connector        `json:"connectors,omitempty"`
	Clusters    []analysis.ExpertiseCluster `json:"expertise_clusters,omitempty"`
	Interaction *InteractionStats           `json:"interaction,omitempty"`
	Warnings    []analysis.Warning          `json:"warnings,omitempty"`
}

// EmptyReport is what a scope matching nobody produces: a valid report
// flagged Empty, not an error surfaced to the caller.
func EmptyReport(scope graph.Scope) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC(),
		Scope:       scope.String(),
		Empty:       true,
	}
}

// IsEmptyScope reports whether err means the scope matched nobody.
func IsEmptyScope(err error) bool {
	var empty *graph.ScopeEmptyError
	return errors.As(err, &empty)
}

// NetworkHealth blends density with connectivity (the share of people
// in the largest component). Weights favor density: a sparse but
// connected org still has room to improve.
func NetworkHealth(g *graph.Graph) float64 {
	n := g.Order()
	if n == 0 {
		return 0
	}
	density := analysis.NetworkDensity(g)
	connectivity := 0.0
	if components := analysis.ConnectedComponents(g); len(components) > 0 {
		connectivity = float64(len(components[0])) / float64(n)
	}
	if n == 1 {
		connectivity = 1
	}
	return 0.6*density + 0.4*connectivity
}
