package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DrSkyle/coactor/pkg/config"
	"github.com/DrSkyle/coactor/pkg/engine"
	"github.com/DrSkyle/coactor/pkg/graph"
	"github.com/DrSkyle/coactor/pkg/policy"
	"github.com/DrSkyle/coactor/pkg/report"
	"github.com/DrSkyle/coactor/pkg/storage"
	"github.com/DrSkyle/coactor/pkg/telemetry"
	"github.com/DrSkyle/coactor/pkg/tmdb"
	"github.com/DrSkyle/coactor/pkg/tui"
	"github.com/DrSkyle/coactor/pkg/version"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tuiLogFile receives logs while the TUI owns the terminal.
const tuiLogFile = "coactor.log"

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the co-actor graph from a seed person",
	Long: `Fetches the seed's well-rated movies, adds their top-billed cast, then
repeats for the people added in the previous round.

Writes nodes.csv, edges.csv and summary.yaml to --output (a directory or
s3://bucket/prefix).

Example:
  coactor build --seed-id 2975 --seed-name "Laurence Fishburne" --rounds 2
  coactor build --credit-filter 'vote_average >= 7.5 && id != 604' --tui`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		return runBuild(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func init() {
	f := buildCmd.Flags()
	f.String("seed-id", config.DefaultSeedID, "TMDb person id to start from")
	f.String("seed-name", "", "Display name of the seed person (known for the default seed)")
	f.Float64("min-vote", engine.DefaultMinVoteAverage, "Minimum vote average of followed movies (0 disables)")
	f.Int("cast-limit", engine.DefaultCastLimit, "Top-billed cast members taken per movie")
	f.Int("rounds", engine.DefaultRounds, "Expansion rounds after the seed round")
	f.Bool("strict", false, "Fail when any lookup was skipped")
	f.String("credit-filter", "", "CEL expression over id, title, vote_average")
	f.StringP("output", "o", config.DefaultOutput, "Output directory or s3://bucket/prefix")
	f.String("language", tmdb.DefaultLanguage, "TMDb response language")
	f.Duration("timeout", tmdb.DefaultTimeout, "Per-request timeout")
	f.Int("max-tries", tmdb.DefaultMaxTries, "Attempts per request")
	f.String("cache-dir", "", "Cache TMDb responses in this directory")
	f.Duration("cache-ttl", config.DefaultCacheTTL, "Cache entry lifetime")
	f.Bool("tui", false, "Show interactive progress")

	bindFlags(f, map[string]string{
		"seed.id":                "seed-id",
		"seed.name":              "seed-name",
		"build.min_vote_average": "min-vote",
		"build.cast_limit":       "cast-limit",
		"build.rounds":           "rounds",
		"build.strict":           "strict",
		"build.credit_filter":    "credit-filter",
		"output":                 "output",
		"tmdb.language":          "language",
		"tmdb.timeout":           "timeout",
		"tmdb.max_tries":         "max-tries",
		"tmdb.cache.dir":         "cache-dir",
		"tmdb.cache.ttl":         "cache-ttl",
		"tui":                    "tui",
	})
}

func runBuild(ctx context.Context, cfg config.Config, out io.Writer) error {
	logger := slog.Default()
	if cfg.TUI {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = telemetry.NewLogger(f, cfg.JSONLogs, cfg.Verbose)
	}

	shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("Telemetry failed", "error", err)
	} else {
		defer shutdown(context.WithoutCancel(ctx))
	}

	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		logger.Warn("Metrics disabled", "error", err)
	}

	src, closeSrc, err := newSource(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	g := graph.New()
	opts := []engine.Option{
		engine.WithConfig(cfg.Engine()),
		engine.WithLogger(logger),
		engine.WithTracer(telemetry.Tracer("coactor/engine")),
		engine.WithMetrics(metrics),
	}
	if cfg.Build.CreditFilter != "" {
		filter, err := policy.NewCreditFilter(cfg.Build.CreditFilter, logger)
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithCreditFilter(filter))
	}

	var (
		res      *engine.Result
		buildErr error
	)
	if cfg.TUI {
		res, buildErr = buildWithTUI(ctx, cfg, g, src, opts)
	} else {
		res, buildErr = engine.New(g, src, opts...).Build(ctx)
	}

	switch {
	case buildErr == nil:
	case errors.Is(buildErr, engine.ErrPartialResult), errors.Is(buildErr, context.Canceled):
		logger.Warn("Publishing partial graph", "error", buildErr)
	default:
		return buildErr
	}

	// Publish even after an interrupt.
	if err := publish(context.WithoutCancel(ctx), cfg, g, res, out); err != nil {
		return err
	}
	return buildErr
}

func buildWithTUI(ctx context.Context, cfg config.Config, g *graph.Graph, src tmdb.Source, opts []engine.Option) (*engine.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.NewModel(cfg.Build.Rounds, cancel))
	driver := engine.New(g, src, append(opts, engine.WithProgress(tui.Notify(p)))...)

	type outcome struct {
		res *engine.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := driver.Build(ctx)
		done <- outcome{res, err}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("tui failed: %w", err)
	}
	o := <-done
	return o.res, o.err
}

func newSource(cfg config.Config, logger *slog.Logger) (tmdb.Source, func(), error) {
	if cfg.Mock {
		logger.Info("Using built-in fixtures")
		return tmdb.DemoSource(), func() {}, nil
	}

	opts := []tmdb.Option{
		tmdb.WithLanguage(cfg.TMDb.Language),
		tmdb.WithTimeout(cfg.TMDb.Timeout),
		tmdb.WithRetry(uint(cfg.TMDb.MaxTries), cfg.TMDb.RetryDelay),
		tmdb.WithLogger(logger),
	}
	if cfg.TMDb.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.TMDb.BaseURL))
	}

	closeFn := func() {}
	if cfg.TMDb.Cache.Dir != "" {
		cache, err := tmdb.OpenCache(tmdb.CacheConfig{
			Dir:    cfg.TMDb.Cache.Dir,
			TTL:    cfg.TMDb.Cache.TTL,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, tmdb.WithCache(cache))
		closeFn = func() {
			if err := cache.Close(); err != nil {
				logger.Warn("Failed to close cache", "error", err)
			}
		}
	}
	return tmdb.NewClient(cfg.APIKey, opts...), closeFn, nil
}

func publish(ctx context.Context, cfg config.Config, g *graph.Graph, res *engine.Result, out io.Writer) error {
	store, err := storage.Open(ctx, cfg.Output)
	if err != nil {
		return err
	}
	if err := storage.SaveGraph(ctx, store, g); err != nil {
		return err
	}

	summary := report.NewSummary(report.Seed{ID: cfg.Seed.ID, Name: cfg.Seed.Name}, g, res)
	var buf bytes.Buffer
	if err := summary.WriteYAML(&buf); err != nil {
		return err
	}
	if err := store.Put(ctx, storage.SummaryKey, buf.Bytes()); err != nil {
		return err
	}

	slog.Info("Artifacts written", "output", cfg.Output, "nodes", summary.TotalNodes, "edges", summary.TotalEdges)
	fmt.Fprintln(out, summary.Render())
	return nil
}
