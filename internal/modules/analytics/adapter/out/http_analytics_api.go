package out

import (
	"context"
	"time"

	"poolwatch/internal/modules/analytics/domain"
	analyticsout "poolwatch/internal/modules/analytics/port/out"
	"poolwatch/internal/platform/apiclient"
)

type HTTPAnalyticsAPI struct {
	client *apiclient.Client
}

func NewHTTPAnalyticsAPI(client *apiclient.Client) analyticsout.AnalyticsAPI {
	return &HTTPAnalyticsAPI{client: client}
}

func poolQuery(poolID int) *apiclient.Params {
	return apiclient.NewParams().Int("pool_id", &poolID)
}

func (a *HTTPAnalyticsAPI) WeekdayAverages(ctx context.Context, poolID int) ([]domain.WeekdayAverage, error) {
	out := []domain.WeekdayAverage{}
	if err := a.client.Get(ctx, "/analytics/weekday-averages", poolQuery(poolID).Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAnalyticsAPI) Heatmap(ctx context.Context, poolID int) (domain.Heatmap, error) {
	out := domain.Heatmap{}
	if err := a.client.Get(ctx, "/analytics/heatmap", poolQuery(poolID).Values(), &out); err != nil {
		return domain.Heatmap{}, err
	}
	return out, nil
}

func (a *HTTPAnalyticsAPI) DailySummary(ctx context.Context, poolID int, start, end *time.Time) ([]domain.DailySummary, error) {
	query := poolQuery(poolID).Date("start_date", start).Date("end_date", end)
	out := []domain.DailySummary{}
	if err := a.client.Get(ctx, "/analytics/daily-summary", query.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPAnalyticsAPI) Trends(ctx context.Context, poolID int, period domain.Period) (domain.Trend, error) {
	p := string(period)
	out := domain.Trend{}
	if err := a.client.Get(ctx, "/analytics/trends", poolQuery(poolID).String("period", &p).Values(), &out); err != nil {
		return domain.Trend{}, err
	}
	return out, nil
}

func (a *HTTPAnalyticsAPI) PeakHours(ctx context.Context, poolID int, weekday string) (domain.PeakHours, error) {
	out := domain.PeakHours{}
	if err := a.client.Get(ctx, "/analytics/peak-hours", poolQuery(poolID).String("weekday", &weekday).Values(), &out); err != nil {
		return domain.PeakHours{}, err
	}
	return out, nil
}

func (a *HTTPAnalyticsAPI) NowAverage(ctx context.Context, poolID int) (domain.NowAverage, error) {
	out := domain.NowAverage{}
	if err := a.client.Get(ctx, "/analytics/weekday-average-now", poolQuery(poolID).Values(), &out); err != nil {
		return domain.NowAverage{}, err
	}
	return out, nil
}
