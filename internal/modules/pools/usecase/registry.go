package usecase

import (
	"context"
	"strconv"

	hclog "github.com/hashicorp/go-hclog"

	"poolwatch/internal/modules/pools/domain"
	poolsdto "poolwatch/internal/modules/pools/dto"
	poolsin "poolwatch/internal/modules/pools/port/in"
	poolsout "poolwatch/internal/modules/pools/port/out"
	"poolwatch/internal/modules/pools/service"
	"poolwatch/internal/platform/observable"
	"poolwatch/internal/platform/sequence"
)

const (
	targetPools  = "pools"
	targetLatest = "latest"
)

func poolTarget(id int) string {
	return "pool:" + strconv.Itoa(id)
}

// Interactor caches the backend's pools. Every cache write happens only after
// the backend confirmed the call, and only if no newer response for the same
// target has been applied in the meantime.
type Interactor struct {
	api     poolsout.PoolAPI
	scraper *service.BulkScraper
	seq     *sequence.Tracker
	log     hclog.Logger

	state *observable.Store[domain.Registry]
	view  observable.Readable[poolsdto.RegistryOutput]
}

func NewInteractor(api poolsout.PoolAPI, scraper *service.BulkScraper, logger hclog.Logger) poolsin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	state := observable.NewStore(domain.Registry{})
	return &Interactor{
		api:     api,
		scraper: scraper,
		seq:     sequence.NewTracker(),
		log:     logger.Named("pools"),
		state:   state,
		view:    observable.Derive[domain.Registry](state, toRegistryOutput),
	}
}

func (i *Interactor) State() observable.Readable[poolsdto.RegistryOutput] {
	return i.view
}

func (i *Interactor) LoadPools(ctx context.Context) {
	n := i.seq.Next(targetPools)
	i.state.Update(domain.Registry.BeginLoad)
	pools, err := i.api.ListPools(ctx)
	applied := i.state.UpdateIf(func(r domain.Registry) (domain.Registry, bool) {
		if !i.seq.Commit(targetPools, n) {
			return r, false
		}
		if err != nil {
			return r.LoadFailed(err.Error()), true
		}
		return r.WithPools(pools), true
	})
	switch {
	case !applied:
		i.log.Debug("discarding stale pool list", "request", n)
	case err != nil:
		i.log.Warn("load pools failed", "error", err)
	default:
		i.log.Debug("pools loaded", "count", len(pools))
	}
}

// LoadLatestVisitors is a background refresh: failures are logged and never
// reach the registry's Error field.
func (i *Interactor) LoadLatestVisitors(ctx context.Context) {
	n := i.seq.Next(targetLatest)
	latest, err := i.api.LatestVisitors(ctx)
	if err != nil {
		i.log.Warn("load latest visitors failed", "error", err)
		return
	}
	i.state.UpdateIf(func(r domain.Registry) (domain.Registry, bool) {
		if !i.seq.Commit(targetLatest, n) {
			return r, false
		}
		return r.WithLatest(latest), true
	})
}

func (i *Interactor) SelectPool(id int) {
	i.state.Update(func(r domain.Registry) domain.Registry { return r.Select(id) })
}

func (i *Interactor) CreatePool(ctx context.Context, input poolsdto.CreatePoolInput) (poolsdto.PoolOutput, error) {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	spec := domain.PoolSpec{
		Name:                  input.Name,
		URL:                   input.URL,
		ElementID:             input.ElementID,
		Timezone:              input.Timezone,
		ScrapeStartTime:       input.ScrapeStartTime,
		ScrapeEndTime:         input.ScrapeEndTime,
		ScrapeIntervalMinutes: input.ScrapeIntervalMinutes,
		IsActive:              active,
	}.WithDefaults()
	if err := spec.Validate(); err != nil {
		return poolsdto.PoolOutput{}, err
	}
	created, err := i.api.CreatePool(ctx, spec)
	if err != nil {
		return poolsdto.PoolOutput{}, err
	}
	// Nothing has been scraped for a brand new pool yet.
	created.TotalRecords = 0
	created.LatestVisitorCount = nil
	created.LatestReadingTime = nil
	i.state.Update(func(r domain.Registry) domain.Registry { return r.Append(created) })
	i.log.Info("pool created", "pool_id", created.ID, "name", created.Name)
	return toPoolOutput(created), nil
}

func (i *Interactor) UpdatePool(ctx context.Context, id int, input poolsdto.UpdatePoolInput) (poolsdto.PoolOutput, error) {
	patch := domain.PoolPatch{
		Name:                  input.Name,
		URL:                   input.URL,
		ElementID:             input.ElementID,
		Timezone:              input.Timezone,
		ScrapeStartTime:       input.ScrapeStartTime,
		ScrapeEndTime:         input.ScrapeEndTime,
		ScrapeIntervalMinutes: input.ScrapeIntervalMinutes,
		IsActive:              input.IsActive,
	}
	if err := patch.Validate(); err != nil {
		return poolsdto.PoolOutput{}, err
	}
	target := poolTarget(id)
	n := i.seq.Next(target)
	returned, err := i.api.UpdatePool(ctx, id, patch)
	if err != nil {
		return poolsdto.PoolOutput{}, err
	}

	var merged domain.Pool
	applied := i.state.UpdateIf(func(r domain.Registry) (domain.Registry, bool) {
		cached, ok := r.Find(id)
		if !ok {
			cached = domain.Pool{ID: id}
		}
		merged = returned.Apply(cached)
		if !ok || !i.seq.Commit(target, n) {
			return r, false
		}
		return r.Replace(merged), true
	})
	if !applied {
		i.log.Debug("pool update not applied to cache", "pool_id", id, "request", n)
	}
	return toPoolOutput(merged), nil
}

// DeletePool applies a confirmed delete unconditionally and retires the
// pool's target so updates still in flight are never committed.
func (i *Interactor) DeletePool(ctx context.Context, id int) error {
	if err := i.api.DeletePool(ctx, id); err != nil {
		return err
	}
	i.state.Update(func(r domain.Registry) domain.Registry {
		i.seq.Retire(poolTarget(id))
		return r.Remove(id)
	})
	i.log.Info("pool deleted", "pool_id", id)
	return nil
}

// TriggerScrape only queues work upstream; the cache is not touched.
func (i *Interactor) TriggerScrape(ctx context.Context, id int) (poolsdto.ScrapeOutput, error) {
	ack, err := i.api.TriggerScrape(ctx, id)
	if err != nil {
		return poolsdto.ScrapeOutput{}, err
	}
	out := poolsdto.ScrapeOutput{PoolID: id, Message: ack.Message, TaskID: ack.TaskID}
	if pool, ok := i.state.Get().Find(id); ok {
		out.PoolName = pool.Name
	}
	return out, nil
}

// ScrapeAll queues a run for every active pool currently in the cache.
func (i *Interactor) ScrapeAll(ctx context.Context) []poolsdto.ScrapeOutput {
	outcomes := i.scraper.Run(ctx, i.state.Get().Pools)
	out := make([]poolsdto.ScrapeOutput, 0, len(outcomes))
	for _, outcome := range outcomes {
		item := poolsdto.ScrapeOutput{
			PoolID:   outcome.Pool.ID,
			PoolName: outcome.Pool.Name,
			Message:  outcome.Ack.Message,
			TaskID:   outcome.Ack.TaskID,
		}
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
		}
		out = append(out, item)
	}
	return out
}

func (i *Interactor) GetPool(ctx context.Context, id int) (poolsdto.PoolOutput, error) {
	pool, err := i.api.GetPool(ctx, id)
	if err != nil {
		return poolsdto.PoolOutput{}, err
	}
	return toPoolOutput(pool), nil
}

func (i *Interactor) CurrentReading(ctx context.Context, id int) (poolsdto.CurrentReadingOutput, error) {
	reading, err := i.api.CurrentReading(ctx, id)
	if err != nil {
		return poolsdto.CurrentReadingOutput{}, err
	}
	out := poolsdto.CurrentReadingOutput{
		PoolID:       reading.PoolID,
		PoolName:     reading.PoolName,
		VisitorCount: reading.VisitorCount,
		Weekday:      reading.Weekday,
		Message:      reading.Message,
	}
	if !reading.Timestamp.IsZero() {
		ts := reading.Timestamp.Time
		out.Timestamp = &ts
	}
	return out, nil
}

func toRegistryOutput(r domain.Registry) poolsdto.RegistryOutput {
	out := poolsdto.RegistryOutput{
		Pools:          make([]poolsdto.PoolOutput, 0, len(r.Pools)),
		LatestVisitors: make([]poolsdto.LatestVisitorOutput, 0, len(r.LatestVisitors)),
		Loading:        r.Loading,
		Error:          r.Error,
	}
	if r.SelectedPoolID != nil {
		id := *r.SelectedPoolID
		out.SelectedPoolID = &id
	}
	for _, pool := range r.Pools {
		out.Pools = append(out.Pools, toPoolOutput(pool))
	}
	for _, latest := range r.LatestVisitors {
		out.LatestVisitors = append(out.LatestVisitors, poolsdto.LatestVisitorOutput{
			PoolID:       latest.PoolID,
			PoolName:     latest.PoolName,
			VisitorCount: latest.VisitorCount,
			Timestamp:    latest.Timestamp.Time,
			Weekday:      latest.Weekday,
		})
	}
	return out
}

func toPoolOutput(pool domain.Pool) poolsdto.PoolOutput {
	out := poolsdto.PoolOutput{
		ID:                    pool.ID,
		Name:                  pool.Name,
		URL:                   pool.URL,
		ElementID:             pool.ElementID,
		Timezone:              pool.Timezone,
		ScrapeStartTime:       pool.ScrapeStartTime,
		ScrapeEndTime:         pool.ScrapeEndTime,
		ScrapeIntervalMinutes: pool.ScrapeIntervalMinutes,
		IsActive:              pool.IsActive,
		CreatedAt:             pool.CreatedAt.Time,
		TotalRecords:          pool.TotalRecords,
	}
	if pool.LatestVisitorCount != nil {
		count := *pool.LatestVisitorCount
		out.LatestVisitorCount = &count
	}
	if pool.LatestReadingTime != nil && !pool.LatestReadingTime.IsZero() {
		ts := pool.LatestReadingTime.Time
		out.LatestReadingTime = &ts
	}
	return out
}
