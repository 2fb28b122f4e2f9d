package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/postgres"
)

// PostgresStore keeps the corpus as the single row of a snapshot table:
//
//	CREATE TABLE corpus_snapshots (
//	    id          BIGSERIAL PRIMARY KEY,
//	    data        JSONB NOT NULL,
//	    captured_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
// Save replaces the row inside one transaction.
type PostgresStore struct {
	db    *postgres.Client
	table string
}

// NewPostgresStore creates the snapshot table when it does not exist.
func NewPostgresStore(ctx context.Context, db *postgres.Client, table string) (*PostgresStore, error) {
	s := &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
	_, err := db.DB.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id          BIGSERIAL PRIMARY KEY,
		data        JSONB NOT NULL,
		captured_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, s.table))
	if err != nil {
		return nil, fmt.Errorf("creating snapshot table %s: %w", table, err)
	}
	return s, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*index.Corpus, error) {
	var data []byte
	err := s.db.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT data FROM %s ORDER BY captured_at DESC, id DESC LIMIT 1`, s.table),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest corpus snapshot: %w", err)
	}
	return Decode(data)
}

func (s *PostgresStore) Save(ctx context.Context, corpus *index.Corpus) error {
	data, err := Encode(corpus)
	if err != nil {
		return err
	}
	return s.db.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
			return fmt.Errorf("clearing corpus snapshots: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (data, captured_at) VALUES ($1, $2)`, s.table),
			data, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("saving corpus snapshot: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
