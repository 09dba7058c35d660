package in

import (
	"context"

	"poolwatch/internal/modules/analytics/dto"
	analyticsin "poolwatch/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) WeekdayAverages(ctx context.Context, poolID int) ([]dto.WeekdayAverageOutput, error) {
	return h.usecase.WeekdayAverages(ctx, poolID)
}

func (h CLIHandler) Heatmap(ctx context.Context, poolID int) (dto.HeatmapOutput, error) {
	return h.usecase.Heatmap(ctx, poolID)
}

func (h CLIHandler) DailySummary(ctx context.Context, poolID int, window dto.DateRangeInput) ([]dto.DailySummaryOutput, error) {
	return h.usecase.DailySummary(ctx, poolID, window)
}

func (h CLIHandler) Trends(ctx context.Context, poolID int, period string) (dto.TrendOutput, error) {
	return h.usecase.Trends(ctx, poolID, period)
}

func (h CLIHandler) PeakHours(ctx context.Context, poolID int, weekday string) (dto.PeakHoursOutput, error) {
	return h.usecase.PeakHours(ctx, poolID, weekday)
}

func (h CLIHandler) NowAverage(ctx context.Context, poolID int) (dto.NowAverageOutput, error) {
	return h.usecase.NowAverage(ctx, poolID)
}

func (h CLIHandler) Report(ctx context.Context, poolID int) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, poolID)
}
