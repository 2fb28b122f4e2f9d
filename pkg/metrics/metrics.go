// Package metrics defines the Prometheus collectors recorded during one
// docrank run and writes them to a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for a run. Each Metrics owns its
// registry so a process (or a test) may create several.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal           *prometheus.CounterVec
	PhaseDuration       *prometheus.HistogramVec
	DocsIndexedTotal    prometheus.Counter
	DocsSkippedTotal    prometheus.Counter
	ScanEntriesVisited  prometheus.Gauge
	CorpusDocuments     prometheus.Gauge
	StoreFallbacksTotal *prometheus.CounterVec
	StoreSaveFailures   prometheus.Counter
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	SearchResultsCount  prometheus.Gauge
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrank_runs_total",
				Help: "Total runs by result (ok, usage, scan, read, store, internal).",
			},
			[]string{"result"},
		),
		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docrank_phase_duration_seconds",
				Help:    "Duration of each run phase (load, scan, save, rank) in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"phase"},
		),
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docrank_documents_indexed_total",
				Help: "Documents tokenized and added to the corpus.",
			},
		),
		DocsSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docrank_documents_skipped_total",
				Help: "Files skipped because their path was already in the corpus.",
			},
		),
		ScanEntriesVisited: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docrank_scan_entries_visited",
				Help: "Directory entries visited by the most recent scan.",
			},
		),
		CorpusDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docrank_corpus_documents",
				Help: "Documents held in the corpus after indexing.",
			},
		),
		StoreFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrank_store_fallbacks_total",
				Help: "Loads that fell back to an empty corpus, by reason (missing, corrupt).",
			},
			[]string{"reason"},
		),
		StoreSaveFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docrank_store_save_failures_total",
				Help: "Corpus saves that failed and were skipped.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docrank_cache_hits_total",
				Help: "Total number of query cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docrank_cache_misses_total",
				Help: "Total number of query cache misses.",
			},
		),
		SearchResultsCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docrank_search_results",
				Help: "Ranked documents returned by the last search.",
			},
		),
	}

	m.Registry.MustRegister(
		m.RunsTotal,
		m.PhaseDuration,
		m.DocsIndexedTotal,
		m.DocsSkippedTotal,
		m.ScanEntriesVisited,
		m.CorpusDocuments,
		m.StoreFallbacksTotal,
		m.StoreSaveFailures,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.SearchResultsCount,
	)

	return m
}

// WriteTextfile writes every collected metric to path in the text exposition
// format. The write goes through a temporary file and a rename.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
