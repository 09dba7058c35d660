package in

import (
	"context"

	"poolwatch/internal/modules/analytics/dto"
)

// Usecase exposes the backend's read-only analytics. Nothing is cached and
// no aggregate is recomputed locally.
type Usecase interface {
	WeekdayAverages(ctx context.Context, poolID int) ([]dto.WeekdayAverageOutput, error)
	Heatmap(ctx context.Context, poolID int) (dto.HeatmapOutput, error)
	DailySummary(ctx context.Context, poolID int, window dto.DateRangeInput) ([]dto.DailySummaryOutput, error)
	Trends(ctx context.Context, poolID int, period string) (dto.TrendOutput, error)
	PeakHours(ctx context.Context, poolID int, weekday string) (dto.PeakHoursOutput, error)
	NowAverage(ctx context.Context, poolID int) (dto.NowAverageOutput, error)
	Report(ctx context.Context, poolID int) (dto.ReportOutput, error)
}
