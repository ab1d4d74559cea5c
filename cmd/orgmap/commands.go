package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shulgaalexey/robo-peoples-person/pkg/analysis"
	"github.com/shulgaalexey/robo-peoples-person/pkg/config"
	"github.com/shulgaalexey/robo-peoples-person/pkg/export"
	"github.com/shulgaalexey/robo-peoples-person/pkg/graph"
	"github.com/shulgaalexey/robo-peoples-person/pkg/insight"
	"github.com/shulgaalexey/robo-peoples-person/pkg/logging"
	"github.com/shulgaalexey/robo-peoples-person/pkg/parallel"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
)

func cmdReport(ctx context.Context, args []string, st store.Store, cfg *config.Config, logger logging.Logger) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	depts := fs.String("dept", "", "comma-separated departments to scope to")
	people := fs.String("people", "", "comma-separated person IDs to scope to")
	topN := fs.Int("top", cfg.Analysis.TopN, "how many influential people to rank")
	window := fs.Int("window", cfg.Analysis.WindowDays, "interaction window in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pool := parallel.NewWorkerPool(cfg.Analysis.Workers)
	defer pool.Close()
	reporter := insight.NewReporter(st, pool, logger)
	report, err := reporter.GenerateReport(ctx, insight.ReportOptions{
		Scope: graph.Scope{
			Departments: splitList(*depts),
			PersonIDs:   splitList(*people),
		},
		TopN:   *topN,
		Window: *window,
	})
	if err != nil {
		return err
	}
	fmt.Print(renderReport(report))
	return nil
}

func cmdRecommend(ctx context.Context, args []string, st store.Store, logger logging.Logger) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	personID := fs.String("person", "", "person ID to recommend connections for")
	limit := fs.Int("limit", analysis.DefaultRecommendOptions().Limit, "maximum recommendations")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *personID == "" {
		return fmt.Errorf("recommend: -person is required")
	}

	g, err := materializeAll(ctx, st, logger)
	if err != nil {
		return err
	}
	recs, err := analysis.RecommendConnections(ctx, g, *personID, analysis.RecommendOptions{Limit: *limit})
	if err != nil {
		return err
	}
	fmt.Print(renderRecommendations(g, *personID, recs))
	return nil
}

func cmdExperts(ctx context.Context, args []string, st store.Store, logger logging.Logger) error {
	fs := flag.NewFlagSet("experts", flag.ExitOnError)
	area := fs.String("area", "", "expertise area to search for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *area == "" {
		return fmt.Errorf("experts: -area is required")
	}

	g, err := materializeAll(ctx, st, logger)
	if err != nil {
		return err
	}
	fmt.Print(renderExperts(*area, analysis.FindExperts(g, *area)))
	return nil
}

func cmdPaths(ctx context.Context, args []string, st store.Store, logger logging.Logger) error {
	fs := flag.NewFlagSet("paths", flag.ExitOnError)
	from := fs.String("from", "", "starting person ID")
	to := fs.String("to", "", "target person ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("paths: -from and -to are required")
	}

	g, err := materializeAll(ctx, st, logger)
	if err != nil {
		return err
	}
	res, err := analysis.CollaborationPaths(ctx, g, *from, *to)
	if err != nil {
		return err
	}
	fmt.Print(renderPaths(g, res))
	return nil
}

func cmdExport(ctx context.Context, args []string, st store.Store, logger logging.Logger) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "orgmap-export.json", "output file")
	compress := fs.Bool("compress", false, "write a snappy-compressed archive")
	csvPath := fs.String("csv", "", "also write a contacts CSV to this file")
	withAnalysis := fs.Bool("analysis", false, "export the analysis document instead of the raw graph")
	notes := fs.Bool("notes", false, "include personal notes")
	contact := fs.Bool("contact", false, "include contact details")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *withAnalysis {
		g, err := materializeAll(ctx, st, logger)
		if err != nil {
			return err
		}
		payload, err := export.BuildReportPayload(ctx, g)
		if err != nil {
			return err
		}
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteReportJSON(f, payload); err != nil {
			return err
		}
		fmt.Printf("exported analysis of %d people, %d edges to %s\n",
			len(payload.Nodes), len(payload.Edges), *out)
		return nil
	}

	payload, err := export.BuildPayload(ctx, st, export.Options{
		IncludeNotes:   *notes,
		IncludeContact: *contact,
	})
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	if *compress {
		err = export.WriteCompressed(f, payload)
	} else {
		err = export.WriteJSON(f, payload)
	}
	if err != nil {
		return err
	}
	if *csvPath != "" {
		cf, err := os.Create(*csvPath)
		if err != nil {
			return err
		}
		defer cf.Close()
		if err := export.WriteContactsCSV(cf, payload); err != nil {
			return err
		}
	}
	fmt.Printf("exported %d people, %d relationships to %s\n",
		len(payload.People), len(payload.Relationships), *out)
	return nil
}

func cmdImport(ctx context.Context, args []string, st store.Store) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "export file to load")
	compressed := fs.Bool("compressed", false, "input is a snappy-compressed archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("import: -in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()
	var payload *export.Payload
	if *compressed {
		payload, err = export.ReadCompressed(f)
	} else {
		payload, err = export.ReadJSON(f)
	}
	if err != nil {
		return err
	}
	if err := export.Import(ctx, st, payload); err != nil {
		return err
	}
	fmt.Printf("imported %d people, %d relationships\n",
		len(payload.People), len(payload.Relationships))
	return nil
}

// materializeAll snapshots the whole store with no scope filter.
func materializeAll(ctx context.Context, st store.Store, logger logging.Logger) (*graph.Graph, error) {
	return graph.NewMaterializer(st, logger).Materialize(ctx, graph.Scope{})
}
