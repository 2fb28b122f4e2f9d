// Package app wires one docrank invocation: load the persisted corpus, scan
// the requested directory, save, then rank the corpus for the query.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/notify"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/store"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/tracing"
)

// Options are the per-invocation inputs from the command line.
type Options struct {
	Directory string
	Query     string
}

// Runner executes invocations against one store. Cache and Notifier are
// optional.
type Runner struct {
	Config   *config.Config
	Store    store.Store
	Driver   *indexer.Driver
	Cache    *cache.QueryCache
	Notifier *notify.Notifier
	Metrics  *metrics.Metrics

	closers []io.Closer
}

// Run performs load, scan, save and rank, then prints Config.Search.TopK
// lines to out. A load or scan failure returns before anything is saved or
// printed.
func (r *Runner) Run(ctx context.Context, opts Options, out io.Writer) (err error) {
	runID := logger.RunIDFromContext(ctx)
	if runID == "" {
		runID = logger.NewRunID()
		ctx = logger.WithRunID(ctx, runID)
	}
	log := logger.FromContext(ctx).With("component", "runner")
	ctx, span := tracing.StartSpan(ctx, "docrank.run", runID)
	defer func() {
		span.SetAttr("result", apperrors.Category(err))
		span.End()
		r.finish(log, span, err)
	}()

	var corpus *index.Corpus
	if err := r.phase(ctx, "load", func(ctx context.Context) error {
		var loadErr error
		corpus, loadErr = store.LoadOrEmpty(ctx, r.Store, r.Metrics, r.Config.Store.Timeout)
		return loadErr
	}); err != nil {
		return err
	}

	var report indexer.ScanReport
	if err := r.phase(ctx, "scan", func(ctx context.Context) error {
		var scanErr error
		report, scanErr = r.Driver.Scan(ctx, opts.Directory, corpus)
		return scanErr
	}); err != nil {
		return err
	}
	r.Metrics.CorpusDocuments.Set(float64(corpus.Len()))

	r.phase(ctx, "save", func(ctx context.Context) error {
		store.SaveBestEffort(ctx, r.Store, corpus, r.Metrics, r.Config.Store.Timeout)
		return nil
	})

	if report.Indexed > 0 {
		r.afterIndex(ctx, log, runID, report, corpus)
	}

	var results []ranker.ScoredDoc
	if err := r.phase(ctx, "rank", func(ctx context.Context) error {
		var rankErr error
		results, rankErr = r.rank(ctx, corpus, opts.Query)
		return rankErr
	}); err != nil {
		return err
	}
	r.Metrics.SearchResultsCount.Set(float64(len(results)))

	for _, line := range merger.Render(results, r.Config.Search.TopK) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	return nil
}

func (r *Runner) rank(ctx context.Context, corpus *index.Corpus, query string) ([]ranker.ScoredDoc, error) {
	plan := parser.Parse(query)
	k := r.Config.Search.TopK
	compute := func() ([]ranker.ScoredDoc, error) {
		return ranker.TopK(corpus, plan.Terms, k), nil
	}
	if r.Cache == nil {
		return compute()
	}
	results, hit, err := r.Cache.GetOrCompute(ctx, corpus.Fingerprint(), plan.Normalized(), k, compute)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("ranked corpus", "terms", len(plan.Terms), "cache_hit", hit)
	return results, nil
}

// afterIndex runs the side effects of a scan that added documents. Their
// failures are logged only.
func (r *Runner) afterIndex(ctx context.Context, log *slog.Logger, runID string, report indexer.ScanReport, corpus *index.Corpus) {
	if r.Cache != nil {
		if err := r.Cache.Invalidate(ctx); err != nil {
			log.Warn("query cache invalidation failed", "error", err)
		}
	}
	if r.Notifier != nil {
		if err := r.Notifier.IndexComplete(ctx, runID, report, corpus); err != nil {
			log.Warn("index-complete notification failed", "error", err)
		}
	}
}

// phase times fn as a child span and a duration observation.
func (r *Runner) phase(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartChildSpan(ctx, name)
	start := time.Now()
	err := fn(ctx)
	r.Metrics.PhaseDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.SetAttr("error", err.Error())
	}
	span.End()
	return err
}

func (r *Runner) finish(log *slog.Logger, span *tracing.Span, err error) {
	r.Metrics.RunsTotal.WithLabelValues(apperrors.Category(err)).Inc()
	if r.Config.Tracing.Enabled {
		span.Log(log)
	}
	if path := r.Config.Metrics.Textfile; path != "" {
		if werr := r.Metrics.WriteTextfile(path); werr != nil {
			log.Warn("metrics textfile not written", "path", path, "error", werr)
		}
	}
}

// Close releases the store and optional collaborators.
func (r *Runner) Close() error {
	var firstErr error
	if r.Notifier != nil {
		if err := r.Notifier.Close(); err != nil {
			firstErr = err
		}
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
