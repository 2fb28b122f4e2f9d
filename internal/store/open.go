package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/docrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/docrank/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/resilience"
)

// Open connects the backend selected by cfg.Store.Backend. Network backends
// are retried with backoff; if they stay unreachable the error wraps
// ErrStoreUnavailable.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	logger := slog.Default().With("component", "store", "backend", cfg.Store.Backend)
	retryCfg := resilience.RetryConfig{MaxAttempts: cfg.Store.RetryAttempts}

	switch cfg.Store.Backend {
	case config.BackendFile:
		logger.Debug("using file store", "path", cfg.Store.Path)
		return NewFileStore(cfg.Store.Path), nil

	case config.BackendRedis:
		var client *pkgredis.Client
		err := resilience.Retry(ctx, "redis connect", retryCfg, func() error {
			var err error
			client, err = pkgredis.NewClient(ctx, cfg.Redis)
			return err
		})
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrStoreUnavailable, "redis at %s: %v", cfg.Redis.Addr, err)
		}
		logger.Debug("using redis store", "addr", cfg.Redis.Addr, "key", cfg.Store.RedisKey)
		return NewRedisStore(client, cfg.Store.RedisKey), nil

	case config.BackendPostgres:
		var db *postgres.Client
		retryCfg.Retryable = func(err error) bool { return !postgres.IsPermanent(err) }
		err := resilience.Retry(ctx, "postgres connect", retryCfg, func() error {
			var err error
			db, err = postgres.New(ctx, cfg.Postgres)
			return err
		})
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrStoreUnavailable, "postgres at %s:%d: %v", cfg.Postgres.Host, cfg.Postgres.Port, err)
		}
		s, err := NewPostgresStore(ctx, db, cfg.Store.PostgresTable)
		if err != nil {
			_ = db.Close()
			return nil, apperrors.Newf(apperrors.ErrStoreUnavailable, "%v", err)
		}
		logger.Debug("using postgres store", "table", cfg.Store.PostgresTable)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
