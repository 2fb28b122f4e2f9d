package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/docrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/metrics"
)

// ScanReport summarises one pass over a directory.
type ScanReport struct {
	Directory    string
	Visited      int
	Indexed      int
	Skipped      int
	NewDocuments []string
	Duration     time.Duration
}

// Driver merges the regular files of one directory into a corpus.
type Driver struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewDriver(m *metrics.Metrics) *Driver {
	return &Driver{
		metrics: m,
		logger:  slog.Default().With("component", "indexer"),
	}
}

// Scan visits every immediate entry of dir. Regular files whose path is not
// yet in the corpus are read, tokenized and added; known paths are never
// re-read. Directories, symlinks and other entries are only counted.
// Afterwards corpus.EntryCount holds the number of entries visited.
//
// An empty dir leaves the corpus untouched. A directory that cannot be
// listed or a file that cannot be read aborts the scan; entries added
// before the failure stay in the corpus and the caller must not persist it.
func (d *Driver) Scan(ctx context.Context, dir string, corpus *index.Corpus) (ScanReport, error) {
	report := ScanReport{Directory: dir}
	if dir == "" {
		return report, nil
	}
	start := time.Now()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, apperrors.Newf(apperrors.ErrDirectoryScan, "reading directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("scan of %s interrupted: %w", dir, err)
		}
		report.Visited++
		if !entry.Type().IsRegular() {
			d.logger.Debug("skipping non-file entry", "path", entry.Name(), "type", entry.Type().String())
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if corpus.Has(path) {
			report.Skipped++
			d.metrics.DocsSkippedTotal.Inc()
			d.logger.Warn("file already in the cache", "path", path)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return report, apperrors.Newf(apperrors.ErrDocumentRead, "reading %s: %v", path, err)
		}
		stats := index.Analyze(string(content))
		corpus.Add(path, stats)
		report.Indexed++
		report.NewDocuments = append(report.NewDocuments, path)
		d.metrics.DocsIndexedTotal.Inc()
		d.logger.Debug("document indexed",
			"path", path,
			"token_count", stats.Length,
			"distinct_terms", len(stats.Terms),
		)
	}

	corpus.EntryCount = report.Visited
	report.Duration = time.Since(start)
	d.metrics.ScanEntriesVisited.Set(float64(report.Visited))
	d.logger.Info("directory scan complete",
		"directory", dir,
		"visited", report.Visited,
		"indexed", report.Indexed,
		"skipped", report.Skipped,
		"corpus_documents", corpus.Len(),
		"duration", report.Duration,
	)
	return report, nil
}
