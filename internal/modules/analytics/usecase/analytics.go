package usecase

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"poolwatch/internal/modules/analytics/domain"
	analyticsdto "poolwatch/internal/modules/analytics/dto"
	analyticsin "poolwatch/internal/modules/analytics/port/in"
	analyticsout "poolwatch/internal/modules/analytics/port/out"
	"poolwatch/internal/modules/analytics/service"
	"poolwatch/internal/platform/crowd"
	apperrors "poolwatch/internal/platform/errors"
	"poolwatch/internal/platform/weekday"
)

type Interactor struct {
	api      analyticsout.AnalyticsAPI
	overview *service.OverviewFetcher
	renderer analyticsout.Renderer
	ceiling  float64
	log      hclog.Logger
}

// NewInteractor accepts a nil renderer, in which case reports are returned
// as plain markdown.
func NewInteractor(api analyticsout.AnalyticsAPI, overview *service.OverviewFetcher, renderer analyticsout.Renderer, ceiling float64, logger hclog.Logger) analyticsin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		api:      api,
		overview: overview,
		renderer: renderer,
		ceiling:  ceiling,
		log:      logger.Named("analytics"),
	}
}

func (i *Interactor) WeekdayAverages(ctx context.Context, poolID int) ([]analyticsdto.WeekdayAverageOutput, error) {
	averages, err := i.api.WeekdayAverages(ctx, poolID)
	if err != nil {
		return nil, err
	}
	out := make([]analyticsdto.WeekdayAverageOutput, 0, len(averages))
	for _, a := range averages {
		out = append(out, analyticsdto.WeekdayAverageOutput(a))
	}
	return out, nil
}

func (i *Interactor) Heatmap(ctx context.Context, poolID int) (analyticsdto.HeatmapOutput, error) {
	heatmap, err := i.api.Heatmap(ctx, poolID)
	if err != nil {
		return analyticsdto.HeatmapOutput{}, err
	}
	return toHeatmapOutput(heatmap), nil
}

func (i *Interactor) DailySummary(ctx context.Context, poolID int, window analyticsdto.DateRangeInput) ([]analyticsdto.DailySummaryOutput, error) {
	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrInvalidInput)
	}
	days, err := i.api.DailySummary(ctx, poolID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	return toDailyOutputs(days), nil
}

func (i *Interactor) Trends(ctx context.Context, poolID int, period string) (analyticsdto.TrendOutput, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return analyticsdto.TrendOutput{}, err
	}
	trend, err := i.api.Trends(ctx, poolID, p)
	if err != nil {
		return analyticsdto.TrendOutput{}, err
	}
	return toTrendOutput(trend), nil
}

func (i *Interactor) PeakHours(ctx context.Context, poolID int, day string) (analyticsdto.PeakHoursOutput, error) {
	canonical, err := weekday.Parse(day)
	if err != nil {
		return analyticsdto.PeakHoursOutput{}, err
	}
	peak, err := i.api.PeakHours(ctx, poolID, canonical)
	if err != nil {
		return analyticsdto.PeakHoursOutput{}, err
	}
	return toPeakOutput(peak), nil
}

func (i *Interactor) NowAverage(ctx context.Context, poolID int) (analyticsdto.NowAverageOutput, error) {
	now, err := i.api.NowAverage(ctx, poolID)
	if err != nil {
		return analyticsdto.NowAverageOutput{}, err
	}
	return analyticsdto.NowAverageOutput(now), nil
}

// Report falls back to the markdown source when rendering fails.
func (i *Interactor) Report(ctx context.Context, poolID int) (analyticsdto.ReportOutput, error) {
	ov, err := i.overview.Fetch(ctx, poolID)
	if err != nil {
		return analyticsdto.ReportOutput{}, err
	}
	md := service.BuildReport(ov, i.ceiling)
	out := analyticsdto.ReportOutput{PoolID: poolID, Markdown: md, Rendered: md}
	if i.renderer == nil {
		return out, nil
	}
	rendered, err := i.renderer.Render(md)
	if err != nil {
		i.log.Warn("report rendering failed, using markdown", "pool_id", poolID, "error", err)
		return out, nil
	}
	out.Rendered = rendered
	return out, nil
}

func toHeatmapOutput(h domain.Heatmap) analyticsdto.HeatmapOutput {
	cell := func(c domain.HeatmapCell) analyticsdto.HeatmapCellOutput {
		n := h.Normalize(c.Value)
		level := crowd.Classify(n)
		return analyticsdto.HeatmapCellOutput{
			Weekday:    c.Weekday,
			Hour:       c.Hour,
			Value:      c.Value,
			Normalized: n,
			Level:      string(level),
			Color:      string(level.Color()),
		}
	}
	out := analyticsdto.HeatmapOutput{
		PoolID:   h.PoolID,
		PoolName: h.PoolName,
		MinValue: h.MinValue,
		MaxValue: h.MaxValue,
		Cells:    make([]analyticsdto.HeatmapCellOutput, 0, len(h.Data)),
	}
	for _, c := range h.Data {
		out.Cells = append(out.Cells, cell(c))
	}
	grid := h.Grid()
	out.Hours = grid.Hours
	for day, slots := range grid.Rows {
		row := analyticsdto.HeatmapRowOutput{Weekday: weekday.Names[day], Cells: make([]*analyticsdto.HeatmapCellOutput, len(slots))}
		for col, slot := range slots {
			if !slot.Present {
				continue
			}
			c := cell(domain.HeatmapCell{Weekday: row.Weekday, Hour: grid.Hours[col], Value: slot.Value})
			row.Cells[col] = &c
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func toDailyOutputs(days []domain.DailySummary) []analyticsdto.DailySummaryOutput {
	out := make([]analyticsdto.DailySummaryOutput, 0, len(days))
	for _, d := range days {
		out = append(out, analyticsdto.DailySummaryOutput{
			Date:          d.Date.Time,
			PoolID:        d.PoolID,
			MinVisitors:   d.MinVisitors,
			MaxVisitors:   d.MaxVisitors,
			AvgVisitors:   d.AvgVisitors,
			TotalReadings: d.TotalReadings,
		})
	}
	return out
}

func toTrendOutput(t domain.Trend) analyticsdto.TrendOutput {
	out := analyticsdto.TrendOutput{
		PoolID:     t.PoolID,
		PoolName:   t.PoolName,
		PeriodType: string(t.PeriodType),
		Data:       make([]analyticsdto.TrendPointOutput, 0, len(t.Data)),
	}
	for _, p := range t.Data {
		out.Data = append(out.Data, analyticsdto.TrendPointOutput(p))
	}
	return out
}

func toPeakOutput(p domain.PeakHours) analyticsdto.PeakHoursOutput {
	out := analyticsdto.PeakHoursOutput{
		PeakHour:     p.PeakHour,
		QuietestHour: p.QuietestHour,
		ByHour:       make([]analyticsdto.HourStatOutput, 0, len(p.ByHour)),
	}
	for _, h := range p.ByHour {
		out.ByHour = append(out.ByHour, analyticsdto.HourStatOutput(h))
	}
	return out
}
