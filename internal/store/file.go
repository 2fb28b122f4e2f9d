package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
)

// FileStore keeps the corpus as one JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (*index.Corpus, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading corpus file %s: %w", f.path, err)
	}
	return Decode(data)
}

// Save writes to a .tmp sibling first and renames it over the target, so a
// crash leaves either the old or the new corpus. A cancelled ctx stops the
// save before the rename and removes the temp file.
func (f *FileStore) Save(ctx context.Context, corpus *index.Corpus) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("corpus save abandoned: %w", err)
	}
	data, err := Encode(corpus)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating corpus directory: %w", err)
	}
	tmpPath := f.path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp corpus file: %w", err)
	}
	defer os.Remove(tmpPath)
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing corpus: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing corpus file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing corpus file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("corpus save abandoned: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("renaming corpus file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
