package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"poolwatch/internal/modules/analytics/domain"
	analyticsout "poolwatch/internal/modules/analytics/port/out"
	"poolwatch/internal/platform/clock"
)

// OverviewDays is how many calendar days, today included, the daily table
// of an overview covers.
const OverviewDays = 7

type OverviewFetcher struct {
	api   analyticsout.AnalyticsAPI
	clock clock.Clock
}

func NewOverviewFetcher(api analyticsout.AnalyticsAPI, c clock.Clock) *OverviewFetcher {
	if c == nil {
		c = clock.SystemClock{}
	}
	return &OverviewFetcher{api: api, clock: c}
}

// Fetch issues the four reads concurrently. The first failure cancels the
// others and is returned wrapped with the part that failed.
func (f *OverviewFetcher) Fetch(ctx context.Context, poolID int) (domain.Overview, error) {
	now := f.clock.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := to.AddDate(0, 0, -(OverviewDays - 1))
	ov := domain.Overview{PoolID: poolID, GeneratedAt: now, From: from, To: to}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := f.api.NowAverage(gctx, poolID)
		if err != nil {
			return fmt.Errorf("average so far today: %w", err)
		}
		ov.Now = v
		return nil
	})
	g.Go(func() error {
		v, err := f.api.PeakHours(gctx, poolID, "")
		if err != nil {
			return fmt.Errorf("peak hours: %w", err)
		}
		ov.Peak = v
		return nil
	})
	g.Go(func() error {
		v, err := f.api.Trends(gctx, poolID, domain.Weekly)
		if err != nil {
			return fmt.Errorf("weekly trend: %w", err)
		}
		ov.Trend = v
		return nil
	})
	g.Go(func() error {
		v, err := f.api.DailySummary(gctx, poolID, &from, &to)
		if err != nil {
			return fmt.Errorf("daily summary: %w", err)
		}
		ov.Daily = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Overview{}, err
	}
	return ov, nil
}
