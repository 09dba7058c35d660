package out

import (
	"context"

	"poolwatch/internal/modules/pools/domain"
)

type PoolAPI interface {
	ListPools(ctx context.Context) ([]domain.Pool, error)
	GetPool(ctx context.Context, id int) (domain.Pool, error)
	CreatePool(ctx context.Context, spec domain.PoolSpec) (domain.Pool, error)
	// UpdatePool returns only the fields the backend echoed back.
	UpdatePool(ctx context.Context, id int, patch domain.PoolPatch) (domain.PoolPatch, error)
	DeletePool(ctx context.Context, id int) error
	TriggerScrape(ctx context.Context, id int) (domain.ScrapeAck, error)
	CurrentReading(ctx context.Context, id int) (domain.CurrentReading, error)
	LatestVisitors(ctx context.Context) ([]domain.LatestVisitor, error)
}
