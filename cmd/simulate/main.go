// Command simulate plays one tournament and prints its report.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/tournament-sim/internal/app/tournaments"
	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
	"github.com/preston-bernstein/tournament-sim/internal/providers/file"
	"github.com/preston-bernstein/tournament-sim/internal/providers/fixture"
	"github.com/preston-bernstein/tournament-sim/internal/report"
	"github.com/preston-bernstein/tournament-sim/internal/snapshots"
	"github.com/preston-bernstein/tournament-sim/internal/store"
)

const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	seed        uint64
	source      string
	groups      string
	exhibitions string
	attempts    int
	snapshotDir string
	asJSON      bool
	logLevel    string
}

func parseFlags(args []string, cfg config.Config, stderr io.Writer) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Uint64Var(&opts.seed, "seed", cfg.Simulation.Seed, "random seed; 0 picks one")
	fs.StringVar(&opts.source, "source", cfg.Roster.Source, "roster source: fixture or file")
	fs.StringVar(&opts.groups, "groups", cfg.Roster.GroupsPath, "groups JSON file (file source)")
	fs.StringVar(&opts.exhibitions, "exhibitions", cfg.Roster.ExhibitionsPath, "exhibitions JSON file (file source)")
	fs.IntVar(&opts.attempts, "attempts", cfg.Simulation.MaxDrawAttempts, "maximum draw attempts")
	fs.StringVar(&opts.snapshotDir, "out", "", "also write the run snapshot under this directory")
	fs.BoolVar(&opts.asJSON, "json", false, "print the result as JSON instead of a report")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "load .env: %v\n", err)
	}
	cfg := config.Load()

	opts, err := parseFlags(args, cfg, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := logging.NewLogger(logging.Config{Level: opts.logLevel, Format: cfg.Log.Format, Output: stderr})
	provider, err := buildProvider(opts, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	var svcOpts []tournaments.Option
	if opts.snapshotDir != "" {
		svcOpts = append(svcOpts, tournaments.WithSnapshots(snapshots.NewWriter(opts.snapshotDir, cfg.Snapshots.Retention), nil))
	}
	svc := tournaments.NewService(provider, store.NewMemoryStore(), tournaments.Config{
		DefaultSeed:     opts.seed,
		MaxDrawAttempts: opts.attempts,
	}, logger, nil, svcOpts...)

	result, runErr := svc.Run(ctx, opts.seed)
	if result.ID != "" {
		if err := write(stdout, result, opts.asJSON); err != nil {
			fmt.Fprintf(stderr, "write result: %v\n", err)
			return exitRun
		}
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "tournament failed: %v\n", runErr)
		return exitRun
	}
	return exitOK
}

func buildProvider(opts options, logger *slog.Logger) (providers.DataProvider, error) {
	var base providers.DataProvider
	switch opts.source {
	case config.RosterSourceFixture, "":
		base = fixture.New()
	case config.RosterSourceFile:
		base = file.New(opts.groups, opts.exhibitions)
	default:
		return nil, fmt.Errorf("unknown roster source %q", opts.source)
	}
	return providers.NewRetryingProvider(base, logger, nil, opts.source, 1, 0), nil
}

func write(w io.Writer, result tournament.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return report.Render(w, result)
}
