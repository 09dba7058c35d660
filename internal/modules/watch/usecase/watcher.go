package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	poolsdto "poolwatch/internal/modules/pools/dto"
	poolsin "poolwatch/internal/modules/pools/port/in"
	"poolwatch/internal/modules/watch/domain"
	watchdto "poolwatch/internal/modules/watch/dto"
	watchin "poolwatch/internal/modules/watch/port/in"
	watchout "poolwatch/internal/modules/watch/port/out"
	"poolwatch/internal/modules/watch/service"
	"poolwatch/internal/platform/clock"
)

const DefaultInterval = time.Minute

// Interactor polls the registry for fresh readings and publishes whatever
// changed. It only reads the registry through its public store.
type Interactor struct {
	pools     poolsin.Usecase
	publisher watchout.Publisher
	opts      watchdto.Options
	clock     clock.Clock
	log       hclog.Logger

	mu      sync.Mutex
	latest  *poolsdto.RegistryOutput
	stats   watchdto.StatsOutput
	changes *service.Changes
}

func NewInteractor(pools poolsin.Usecase, publisher watchout.Publisher, opts watchdto.Options, c clock.Clock, logger hclog.Logger) watchin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if c == nil {
		c = clock.SystemClock{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Interactor{
		pools:     pools,
		publisher: publisher,
		opts:      opts,
		clock:     c,
		log:       logger.Named("watch"),
		changes:   service.NewChanges(),
	}
}

func (i *Interactor) Stats() watchdto.StatsOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stats
}

func (i *Interactor) Run(ctx context.Context) error {
	notify := make(chan struct{}, 1)
	unsubscribe := i.pools.State().Subscribe(func(s poolsdto.RegistryOutput) {
		i.mu.Lock()
		i.latest = &s
		i.mu.Unlock()
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	i.log.Info("watching pools", "interval", i.opts.Interval, "prefix", i.opts.TopicPrefix)
	i.pools.LoadPools(ctx)
	i.pools.LoadLatestVisitors(ctx)

	ticker := time.NewTicker(i.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			i.pools.LoadLatestVisitors(ctx)
		case <-notify:
			i.publishLatest(ctx)
		}
	}
}

func (i *Interactor) publishLatest(ctx context.Context) {
	i.mu.Lock()
	snapshot := i.latest
	i.mu.Unlock()
	if snapshot == nil {
		return
	}
	for _, msg := range i.changes.Pending(service.Messages(*snapshot, i.opts.Ceiling)) {
		if ctx.Err() != nil {
			return
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			i.log.Error("encode occupancy", "pool_id", msg.PoolID, "error", err)
			continue
		}
		topic := domain.Topic(i.opts.TopicPrefix, msg.PoolID)
		if err := i.publisher.Publish(ctx, topic, payload); err != nil {
			if ctx.Err() != nil {
				return
			}
			i.log.Warn("publish failed", "topic", topic, "error", err)
			i.mu.Lock()
			i.stats.Failed++
			i.mu.Unlock()
			continue
		}
		i.changes.MarkSent(msg)
		i.mu.Lock()
		i.stats.Published++
		i.stats.LastPublish = i.clock.Now()
		i.mu.Unlock()
		i.log.Debug("published occupancy", "topic", topic, "visitors", msg.VisitorCount, "level", msg.Level)
	}
}
