package app

import (
	"context"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/notify"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/store"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/docrank/pkg/redis"
)

// NewRunner opens the configured store and the optional query cache and
// event publisher. Only an unavailable store is an error; an unreachable
// cache is logged and left out.
func NewRunner(ctx context.Context, cfg *config.Config) (*Runner, error) {
	m := metrics.New()
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		Config:  cfg,
		Store:   s,
		Driver:  indexer.NewDriver(m),
		Metrics: m,
	}

	if cfg.Search.Cache {
		client, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("query cache disabled, redis unreachable", "addr", cfg.Redis.Addr, "error", err)
		} else {
			r.Cache = cache.New(client, cfg.Redis.CacheTTL, m)
			r.closers = append(r.closers, client)
		}
	}

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.IndexComplete)
		r.Notifier = notify.New(producer)
	}
	return r, nil
}
