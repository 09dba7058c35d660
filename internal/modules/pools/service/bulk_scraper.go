package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"poolwatch/internal/modules/pools/domain"
	poolsout "poolwatch/internal/modules/pools/port/out"
)

// BulkScraper queues a collection run for many pools, at most one request per
// interval, so a large registry does not flood the ingestion queue.
type BulkScraper struct {
	api      poolsout.PoolAPI
	interval time.Duration
	log      hclog.Logger
}

func NewBulkScraper(api poolsout.PoolAPI, interval time.Duration, logger hclog.Logger) *BulkScraper {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &BulkScraper{api: api, interval: interval, log: logger}
}

// Run scrapes every active pool in order. Inactive pools are skipped. Once
// ctx is done the remaining pools are reported with ctx's error.
func (b *BulkScraper) Run(ctx context.Context, pools []domain.Pool) []domain.ScrapeOutcome {
	limit := rate.Inf
	if b.interval > 0 {
		limit = rate.Every(b.interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	outcomes := make([]domain.ScrapeOutcome, 0, len(pools))
	for _, pool := range pools {
		if !pool.IsActive {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			outcomes = append(outcomes, domain.ScrapeOutcome{Pool: pool, Err: err})
			continue
		}
		ack, err := b.api.TriggerScrape(ctx, pool.ID)
		if err != nil {
			b.log.Warn("scrape request failed", "pool_id", pool.ID, "error", err)
		}
		outcomes = append(outcomes, domain.ScrapeOutcome{Pool: pool, Ack: ack, Err: err})
	}
	return outcomes
}
