package store

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	pkgredis "github.com/Adithya-Monish-Kumar-K/docrank/pkg/redis"
)

// RedisStore keeps the corpus as a single JSON string value.
type RedisStore struct {
	client *pkgredis.Client
	key    string
}

func NewRedisStore(client *pkgredis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (*index.Corpus, error) {
	data, err := r.client.Get(ctx, r.key)
	if err != nil {
		if pkgredis.IsNilError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading corpus key %s: %w", r.key, err)
	}
	return Decode(data)
}

func (r *RedisStore) Save(ctx context.Context, corpus *index.Corpus) error {
	data, err := Encode(corpus)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0); err != nil {
		return fmt.Errorf("writing corpus key %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
