package in

import (
	"context"
	"errors"
	"fmt"

	"poolwatch/internal/modules/pools/dto"
	poolsin "poolwatch/internal/modules/pools/port/in"
	"poolwatch/internal/platform/observable"
)

type CLIHandler struct {
	usecase poolsin.Usecase
}

func NewCLIHandler(usecase poolsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// List loads the registry and turns a recorded load failure into an error,
// since a one-shot command has nowhere else to show it.
func (h CLIHandler) List(ctx context.Context) ([]dto.PoolOutput, error) {
	h.usecase.LoadPools(ctx)
	state := h.usecase.State().Get()
	if state.Error != "" {
		return nil, errors.New(state.Error)
	}
	return state.Pools, nil
}

func (h CLIHandler) Refresh(ctx context.Context) dto.RegistryOutput {
	h.usecase.LoadPools(ctx)
	h.usecase.LoadLatestVisitors(ctx)
	return h.usecase.State().Get()
}

func (h CLIHandler) Show(ctx context.Context, id int) (dto.PoolOutput, error) {
	return h.usecase.GetPool(ctx, id)
}

func (h CLIHandler) Current(ctx context.Context, id int) (dto.CurrentReadingOutput, error) {
	return h.usecase.CurrentReading(ctx, id)
}

func (h CLIHandler) Select(id int) {
	h.usecase.SelectPool(id)
}

func (h CLIHandler) Create(ctx context.Context, input dto.CreatePoolInput) (dto.PoolOutput, error) {
	return h.usecase.CreatePool(ctx, input)
}

// Update loads the registry first so the merged result carries the fields the
// backend did not echo back.
func (h CLIHandler) Update(ctx context.Context, id int, input dto.UpdatePoolInput) (dto.PoolOutput, error) {
	if len(h.usecase.State().Get().Pools) == 0 {
		if _, err := h.List(ctx); err != nil {
			return dto.PoolOutput{}, err
		}
	}
	return h.usecase.UpdatePool(ctx, id, input)
}

func (h CLIHandler) Delete(ctx context.Context, id int) error {
	return h.usecase.DeletePool(ctx, id)
}

func (h CLIHandler) Scrape(ctx context.Context, id int) (dto.ScrapeOutput, error) {
	return h.usecase.TriggerScrape(ctx, id)
}

// ScrapeAll fails only when the registry itself cannot be loaded; per-pool
// failures are reported in the returned rows.
func (h CLIHandler) ScrapeAll(ctx context.Context) ([]dto.ScrapeOutput, error) {
	if _, err := h.List(ctx); err != nil {
		return nil, fmt.Errorf("load pools: %w", err)
	}
	return h.usecase.ScrapeAll(ctx), nil
}

func (h CLIHandler) State() observable.Readable[dto.RegistryOutput] {
	return h.usecase.State()
}
