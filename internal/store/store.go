// Package store persists the corpus between runs.
//
// Every backend holds one serialized corpus:
//
//	{"documents": {"<path>": {"terms": {"<token>": n}, "length": n}}, "entryCount": n}
//
// Absent, empty or malformed data loads as an empty corpus. Any other load
// failure is returned so the caller never overwrites a snapshot it could not
// read. Saving is best effort.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/docrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/resilience"
)

var (
	// ErrNotFound means nothing has been persisted yet, or the stored value
	// is empty.
	ErrNotFound = errors.New("corpus not found")
	// ErrCorrupt means the stored value does not decode into a corpus.
	ErrCorrupt = errors.New("corpus data corrupt")
)

// Store reads and overwrites the single persisted corpus.
type Store interface {
	Load(ctx context.Context) (*index.Corpus, error)
	Save(ctx context.Context, corpus *index.Corpus) error
	Close() error
}

// LoadOrEmpty loads the persisted corpus. A missing or corrupt snapshot is
// replaced by an empty corpus, logged and counted. Every other failure,
// timeouts included, is returned wrapped in ErrStoreUnavailable.
func LoadOrEmpty(ctx context.Context, s Store, m *metrics.Metrics, timeout time.Duration) (*index.Corpus, error) {
	logger := slog.Default().With("component", "store")
	corpus, err := resilience.Call(ctx, timeout, "corpus load", s.Load)
	switch {
	case err == nil:
		logger.Debug("corpus loaded",
			"documents", corpus.Len(),
			"entry_count", corpus.EntryCount,
		)
		return corpus, nil
	case errors.Is(err, ErrNotFound):
		logger.Debug("no persisted corpus, starting empty")
		m.StoreFallbacksTotal.WithLabelValues("missing").Inc()
	case errors.Is(err, ErrCorrupt):
		logger.Warn("persisted corpus unreadable, starting empty", "error", err)
		m.StoreFallbacksTotal.WithLabelValues("corrupt").Inc()
	default:
		return nil, apperrors.Newf(apperrors.ErrStoreUnavailable, "loading corpus: %v", err)
	}
	return index.NewCorpus(), nil
}

// SaveBestEffort persists the corpus and reports whether it succeeded. A
// failure is logged and counted, never returned.
func SaveBestEffort(ctx context.Context, s Store, corpus *index.Corpus, m *metrics.Metrics, timeout time.Duration) bool {
	err := resilience.WithTimeout(ctx, timeout, "corpus save", func(ctx context.Context) error {
		return s.Save(ctx, corpus)
	})
	if err != nil {
		m.StoreSaveFailures.Inc()
		slog.Default().With("component", "store").Warn("saving corpus failed, keeping previous copy",
			"error", err,
			"documents", corpus.Len(),
		)
		return false
	}
	return true
}

type wireDocument struct {
	Terms  *map[string]int `json:"terms"`
	Length *int            `json:"length"`
}

type wireCorpus struct {
	Documents  *map[string]wireDocument `json:"documents"`
	EntryCount *int                     `json:"entryCount"`
}

// Decode parses a serialized corpus. Both top-level fields and both
// per-document fields must be present; counts may not be negative.
func Decode(data []byte) (*index.Corpus, error) {
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	var w wireCorpus
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if w.Documents == nil || w.EntryCount == nil {
		return nil, fmt.Errorf("%w: missing documents or entryCount", ErrCorrupt)
	}
	if *w.EntryCount < 0 {
		return nil, fmt.Errorf("%w: negative entryCount %d", ErrCorrupt, *w.EntryCount)
	}
	corpus := index.NewCorpus()
	corpus.EntryCount = *w.EntryCount
	for id, doc := range *w.Documents {
		if doc.Terms == nil || doc.Length == nil {
			return nil, fmt.Errorf("%w: document %q missing terms or length", ErrCorrupt, id)
		}
		if *doc.Length < 0 {
			return nil, fmt.Errorf("%w: document %q has negative length", ErrCorrupt, id)
		}
		for term, n := range *doc.Terms {
			if n < 0 {
				return nil, fmt.Errorf("%w: document %q term %q has negative count", ErrCorrupt, id, term)
			}
		}
		corpus.Documents[id] = index.DocumentStats{Terms: *doc.Terms, Length: *doc.Length}
	}
	return corpus, nil
}

// Encode serializes the corpus. Nil term maps are written as empty objects
// so the output always decodes.
func Encode(corpus *index.Corpus) ([]byte, error) {
	out := index.Corpus{
		Documents:  make(map[string]index.DocumentStats, corpus.Len()),
		EntryCount: corpus.EntryCount,
	}
	for id, doc := range corpus.Documents {
		if doc.Terms == nil {
			doc.Terms = map[string]int{}
		}
		out.Documents[id] = doc
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshaling corpus: %w", err)
	}
	return data, nil
}
