// Package notify announces completed scans to downstream consumers over
// Kafka.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/kafka"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
	Close() error
}

// IndexCompleteEvent is published after a scan that added documents.
type IndexCompleteEvent struct {
	RunID           string    `json:"run_id"`
	Directory       string    `json:"directory"`
	NewDocuments    []string  `json:"new_documents"`
	Skipped         int       `json:"skipped"`
	EntryCount      int       `json:"entry_count"`
	CorpusDocuments int       `json:"corpus_documents"`
	IndexedAt       time.Time `json:"indexed_at"`
}

type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

func New(publisher Publisher) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    slog.Default().With("component", "index-notifier"),
	}
}

// IndexComplete publishes one event keyed by directory. Scans that added
// nothing publish nothing.
func (n *Notifier) IndexComplete(ctx context.Context, runID string, report indexer.ScanReport, corpus *index.Corpus) error {
	if report.Indexed == 0 {
		return nil
	}
	event := IndexCompleteEvent{
		RunID:           runID,
		Directory:       report.Directory,
		NewDocuments:    report.NewDocuments,
		Skipped:         report.Skipped,
		EntryCount:      corpus.EntryCount,
		CorpusDocuments: corpus.Len(),
		IndexedAt:       time.Now().UTC(),
	}
	msg := kafka.Event{
		Key:     report.Directory,
		Value:   event,
		Headers: map[string]string{"run-id": runID, "content-type": "application/json"},
	}
	if err := n.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publishing index-complete event: %w", err)
	}
	n.logger.Info("index-complete event published",
		"directory", report.Directory,
		"new_documents", len(report.NewDocuments),
	)
	return nil
}

func (n *Notifier) Close() error {
	return n.publisher.Close()
}
