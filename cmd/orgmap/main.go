// Command orgmap analyzes workplace relationship networks: reports,
// connection recommendations, expert search and data interchange.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shulgaalexey/robo-peoples-person/pkg/config"
	"github.com/shulgaalexey/robo-peoples-person/pkg/logging"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store/memory"
	"github.com/shulgaalexey/robo-peoples-person/pkg/store/postgres"
)

const usage = `usage: orgmap [-config file] <command> [flags]

commands:
  report     analyze the network and print a full report
  recommend  suggest new connections for a person
  experts    find people by expertise area
  paths      show collaboration paths between two people
  export     write a privacy-filtered export
  import     load an export into the store
  seed       load a small demo dataset
`

func main() {
	configPath := flag.String("config", "", "config file path (YAML)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "orgmap:", err)
		os.Exit(1)
	}
	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store init failed", logging.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := dispatch(ctx, cmd, args, st, cfg, logger); err != nil {
		logger.Error("command failed", logging.Operation(cmd), logging.Error(err))
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, cmd string, args []string, st store.Store, cfg *config.Config, logger logging.Logger) error {
	switch cmd {
	case "report":
		return cmdReport(ctx, args, st, cfg, logger)
	case "recommend":
		return cmdRecommend(ctx, args, st, logger)
	case "experts":
		return cmdExperts(ctx, args, st, logger)
	case "paths":
		return cmdPaths(ctx, args, st, logger)
	case "export":
		return cmdExport(ctx, args, st, logger)
	case "import":
		return cmdImport(ctx, args, st)
	case "seed":
		return cmdSeed(ctx, st, logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// openStore builds the configured backend wrapped with metrics
// instrumentation.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "postgres":
		pg, err := postgres.New(ctx, cfg.Store.PostgresURL, postgres.Options{
			MaxConns:     int32(cfg.Store.MaxConns),
			MinConns:     int32(cfg.Store.MinConns),
			QueryTimeout: time.Duration(cfg.Store.QueryTimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return store.Instrument(pg, nil), nil
	default:
		return store.Instrument(memory.New(), nil), nil
	}
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
