package out

import (
	"context"
	"fmt"

	"poolwatch/internal/modules/pools/domain"
	poolsout "poolwatch/internal/modules/pools/port/out"
	"poolwatch/internal/platform/apiclient"
)

type HTTPPoolAPI struct {
	client *apiclient.Client
}

func NewHTTPPoolAPI(client *apiclient.Client) poolsout.PoolAPI {
	return &HTTPPoolAPI{client: client}
}

func poolPath(id int, suffix string) string {
	return fmt.Sprintf("/pools/%d%s", id, suffix)
}

func (a *HTTPPoolAPI) ListPools(ctx context.Context) ([]domain.Pool, error) {
	pools := []domain.Pool{}
	if err := a.client.Get(ctx, "/pools", nil, &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

func (a *HTTPPoolAPI) GetPool(ctx context.Context, id int) (domain.Pool, error) {
	pool := domain.Pool{}
	if err := a.client.Get(ctx, poolPath(id, ""), nil, &pool); err != nil {
		return domain.Pool{}, err
	}
	return pool, nil
}

func (a *HTTPPoolAPI) CreatePool(ctx context.Context, spec domain.PoolSpec) (domain.Pool, error) {
	pool := domain.Pool{}
	if err := a.client.PostJSON(ctx, "/pools", nil, spec, &pool); err != nil {
		return domain.Pool{}, err
	}
	return pool, nil
}

// UpdatePool decodes the response as a patch so that fields the backend
// leaves out stay absent instead of zeroing the cached pool.
func (a *HTTPPoolAPI) UpdatePool(ctx context.Context, id int, patch domain.PoolPatch) (domain.PoolPatch, error) {
	returned := domain.PoolPatch{}
	if err := a.client.PutJSON(ctx, poolPath(id, ""), patch, &returned); err != nil {
		return domain.PoolPatch{}, err
	}
	return returned, nil
}

func (a *HTTPPoolAPI) DeletePool(ctx context.Context, id int) error {
	return a.client.Delete(ctx, poolPath(id, ""))
}

func (a *HTTPPoolAPI) TriggerScrape(ctx context.Context, id int) (domain.ScrapeAck, error) {
	ack := domain.ScrapeAck{}
	if err := a.client.PostJSON(ctx, poolPath(id, "/scrape"), nil, nil, &ack); err != nil {
		return domain.ScrapeAck{}, err
	}
	return ack, nil
}

func (a *HTTPPoolAPI) CurrentReading(ctx context.Context, id int) (domain.CurrentReading, error) {
	reading := domain.CurrentReading{}
	if err := a.client.Get(ctx, poolPath(id, "/current"), nil, &reading); err != nil {
		return domain.CurrentReading{}, err
	}
	return reading, nil
}

func (a *HTTPPoolAPI) LatestVisitors(ctx context.Context) ([]domain.LatestVisitor, error) {
	latest := []domain.LatestVisitor{}
	if err := a.client.Get(ctx, "/visitors/latest", nil, &latest); err != nil {
		return nil, err
	}
	return latest, nil
}
