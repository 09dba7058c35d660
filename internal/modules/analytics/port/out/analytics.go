package out

import (
	"context"
	"time"

	"poolwatch/internal/modules/analytics/domain"
)

type AnalyticsAPI interface {
	WeekdayAverages(ctx context.Context, poolID int) ([]domain.WeekdayAverage, error)
	Heatmap(ctx context.Context, poolID int) (domain.Heatmap, error)
	DailySummary(ctx context.Context, poolID int, start, end *time.Time) ([]domain.DailySummary, error)
	Trends(ctx context.Context, poolID int, period domain.Period) (domain.Trend, error)
	PeakHours(ctx context.Context, poolID int, weekday string) (domain.PeakHours, error)
	NowAverage(ctx context.Context, poolID int) (domain.NowAverage, error)
}

// Renderer turns a markdown document into terminal output.
type Renderer interface {
	Render(markdown string) (string, error)
}
