package out

import (
	"context"
	"fmt"

	"poolwatch/internal/modules/visitors/domain"
	visitorsout "poolwatch/internal/modules/visitors/port/out"
	"poolwatch/internal/platform/apiclient"
)

type HTTPVisitorAPI struct {
	client *apiclient.Client
}

func NewHTTPVisitorAPI(client *apiclient.Client) visitorsout.VisitorAPI {
	return &HTTPVisitorAPI{client: client}
}

func filterQuery(f domain.Filter) *apiclient.Params {
	return apiclient.NewParams().
		Int("pool_id", f.PoolID).
		Date("start_date", f.StartDate).
		Date("end_date", f.EndDate).
		String("weekday", &f.Weekday).
		Int("limit", f.Limit).
		Int("offset", f.Offset)
}

func (a *HTTPVisitorAPI) List(ctx context.Context, filter domain.Filter) ([]domain.Record, error) {
	records := []domain.Record{}
	if err := a.client.Get(ctx, "/visitors", filterQuery(filter).Values(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *HTTPVisitorAPI) Paginated(ctx context.Context, filter domain.Filter) (domain.Page, error) {
	page := domain.Page{}
	if err := a.client.Get(ctx, "/visitors/paginated", filterQuery(filter).Values(), &page); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}

func (a *HTTPVisitorAPI) Latest(ctx context.Context) ([]domain.Latest, error) {
	latest := []domain.Latest{}
	if err := a.client.Get(ctx, "/visitors/latest", nil, &latest); err != nil {
		return nil, err
	}
	return latest, nil
}

func (a *HTTPVisitorAPI) Today(ctx context.Context, poolID int) ([]domain.Record, error) {
	records := []domain.Record{}
	if err := a.client.Get(ctx, fmt.Sprintf("/visitors/today/%d", poolID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *HTTPVisitorAPI) Count(ctx context.Context, poolID *int) (domain.Count, error) {
	count := domain.Count{}
	if err := a.client.Get(ctx, "/visitors/count", apiclient.NewParams().Int("pool_id", poolID).Values(), &count); err != nil {
		return domain.Count{}, err
	}
	return count, nil
}
