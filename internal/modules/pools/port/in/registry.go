package in

import (
	"context"

	"poolwatch/internal/modules/pools/dto"
	"poolwatch/internal/platform/observable"
)

// Usecase is the pool registry. LoadPools reports failure through the
// registry's Error field; the mutating calls return their errors instead and
// leave the cache untouched on failure.
type Usecase interface {
	LoadPools(ctx context.Context)
	LoadLatestVisitors(ctx context.Context)
	SelectPool(id int)
	CreatePool(ctx context.Context, input dto.CreatePoolInput) (dto.PoolOutput, error)
	UpdatePool(ctx context.Context, id int, input dto.UpdatePoolInput) (dto.PoolOutput, error)
	DeletePool(ctx context.Context, id int) error
	TriggerScrape(ctx context.Context, id int) (dto.ScrapeOutput, error)
	ScrapeAll(ctx context.Context) []dto.ScrapeOutput
	GetPool(ctx context.Context, id int) (dto.PoolOutput, error)
	CurrentReading(ctx context.Context, id int) (dto.CurrentReadingOutput, error)
	State() observable.Readable[dto.RegistryOutput]
}
