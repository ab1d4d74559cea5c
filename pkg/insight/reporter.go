package insight

import (
	"context"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/analysis"
	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/logging"
	"github.com/shulgaalexey/robo-peoples-person/pkg/metrics"
	"github.com/shulgaalexey/robo-peoples-person/pkg/model"
	"github.com/shulgaalexey/robo-peoples-person/pkg/parallel"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

// Reporter produces network reports from a store-backed snapshot.
type Reporter struct {
	store   store.Store
	mat     *graph.Materializer
	pool    *parallel.WorkerPool
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewReporter wires a reporter over a store. The worker pool runs the
// independent report sections concurrently; pass nil to compute on a
// private pool sized to the CPU count.
func NewReporter(st store.Store, pool *parallel.WorkerPool, logger logging.Logger) *Reporter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if pool == nil {
		pool = parallel.NewWorkerPool(0)
	}
	return &Reporter{
		store:   st,
		mat:     graph.NewMaterializer(st, logger),
		pool:    pool,
		logger:  logger.With(logging.Component("reporter")),
		metrics: metrics.DefaultRegistry(),
	}
}

// GenerateReport materializes the scope and runs the full analysis
// sweep. A scope matching nobody yields an Empty report; any other
// failure aborts with the first error encountered.
func (r *Reporter) GenerateReport(ctx context.Context, opts ReportOptions) (*Report, error) {
	if opts.TopN <= 0 {
		opts.TopN = DefaultReportOptions().TopN
	}
	if opts.Window <= 0 {
		opts.Window = DefaultReportOptions().Window
	}
	started := time.Now()

	g, err := r.mat.Materialize(ctx, opts.Scope)
	if err != nil {
		if IsEmptyScope(err) {
			r.logger.Warn("report scope matched nobody", logging.Scope(opts.Scope.String()))
			r.metrics.RecordAnalysis("report", "empty_scope", time.Since(started))
			return EmptyReport(opts.Scope), nil
		}
		r.metrics.RecordAnalysis("report", "error", time.Since(started))
		return nil, err
	}
	r.metrics.RecordSnapshot(g.Order(), len(g.UndirectedEdges()))

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Scope:       opts.Scope.String(),
		People:      g.Order(),
		Edges:       len(g.UndirectedEdges()),
		Density:     analysis.NetworkDensity(g),
		Health:      NetworkHealth(g),
	}
	window := model.LastDays(opts.Window, started.UTC())

	var (
		sweep       *analysis.MetricsResult
		communities *analysis.CommunityResult
		silos       []analysis.Silo
		connectors  []analysis.Connector
		clusters    []analysis.ExpertiseCluster
		interaction *InteractionStats
	)
	err = r.pool.Run(ctx,
		func(ctx context.Context) error {
			var err error
			sweep, err = analysis.ComputeAllMetrics(ctx, g)
			return err
		},
		func(ctx context.Context) error {
			var err error
			communities, err = analysis.DetectCommunities(ctx, g)
			return err
		},
		func(ctx context.Context) error {
			var err error
			silos, err = analysis.DetectSilos(ctx, g)
			return err
		},
		func(ctx context.Context) error {
			var err error
			connectors, err = analysis.FindConnectors(ctx, g)
			return err
		},
		func(ctx context.Context) error {
			var err error
			clusters, err = analysis.ExpertiseClusters(ctx, g)
			return err
		},
		func(ctx context.Context) error {
			var err error
			interaction, err = collectInteractionStats(ctx, r.store, g, window)
			return err
		},
	)
	if err != nil {
		r.metrics.RecordAnalysis("report", "error", time.Since(started))
		return nil, err
	}

	report.Influential = analysis.TopInfluential(sweep, opts.TopN)
	report.Warnings = sweep.Warnings
	report.Communities = communities.Communities
	report.Modularity = communities.Modularity
	report.Silos = silos
	report.Connectors = connectors
	report.Clusters = clusters
	report.Interaction = interaction

	r.logger.Info("report generated",
		logging.Scope(opts.Scope.String()),
		logging.Int("people", report.People),
		logging.Int("communities", len(report.Communities)),
		logging.Latency(time.Since(started)),
	)
	r.metrics.RecordAnalysis("report", "ok", time.Since(started))
	return report, nil
}
