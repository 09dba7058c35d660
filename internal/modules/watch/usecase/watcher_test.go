package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	poolsdto "poolwatch/internal/modules/pools/dto"
	"poolwatch/internal/modules/watch/domain"
	watchdto "poolwatch/internal/modules/watch/dto"
	"poolwatch/internal/modules/watch/usecase"
	"poolwatch/internal/platform/clock"
	"poolwatch/internal/platform/observable"
)

// fakePools serves a registry whose latest count grows by one per refresh.
type fakePools struct {
	store   *observable.Store[poolsdto.RegistryOutput]
	mu      sync.Mutex
	count   int
	loads   int
	refresh int
}

func newFakePools() *fakePools {
	return &fakePools{store: observable.NewStore(poolsdto.RegistryOutput{})}
}

func (f *fakePools) LoadPools(context.Context) {
	f.mu.Lock()
	f.loads++
	f.mu.Unlock()
	f.store.Update(func(r poolsdto.RegistryOutput) poolsdto.RegistryOutput {
		r.Pools = []poolsdto.PoolOutput{{ID: 1, Name: "North"}}
		return r
	})
}

func (f *fakePools) LoadLatestVisitors(context.Context) {
	f.mu.Lock()
	f.refresh++
	f.count++
	count := f.count
	f.mu.Unlock()
	ts := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC).Add(time.Duration(count) * time.Minute)
	f.store.Update(func(r poolsdto.RegistryOutput) poolsdto.RegistryOutput {
		r.LatestVisitors = []poolsdto.LatestVisitorOutput{{PoolID: 1, PoolName: "North", VisitorCount: count, Timestamp: ts}}
		return r
	})
}

func (f *fakePools) SelectPool(int) {}
func (f *fakePools) CreatePool(context.Context, poolsdto.CreatePoolInput) (poolsdto.PoolOutput, error) {
	return poolsdto.PoolOutput{}, nil
}
func (f *fakePools) UpdatePool(context.Context, int, poolsdto.UpdatePoolInput) (poolsdto.PoolOutput, error) {
	return poolsdto.PoolOutput{}, nil
}
func (f *fakePools) DeletePool(context.Context, int) error { return nil }
func (f *fakePools) TriggerScrape(context.Context, int) (poolsdto.ScrapeOutput, error) {
	return poolsdto.ScrapeOutput{}, nil
}
func (f *fakePools) ScrapeAll(context.Context) []poolsdto.ScrapeOutput { return nil }
func (f *fakePools) GetPool(context.Context, int) (poolsdto.PoolOutput, error) {
	return poolsdto.PoolOutput{}, nil
}
func (f *fakePools) CurrentReading(context.Context, int) (poolsdto.CurrentReadingOutput, error) {
	return poolsdto.CurrentReadingOutput{}, nil
}
func (f *fakePools) State() observable.Readable[poolsdto.RegistryOutput] { return f.store }

type published struct {
	topic string
	msg   domain.Occupancy
}

type fakePublisher struct {
	mu       sync.Mutex
	failures int
	out      chan published
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	if p.failures > 0 {
		p.failures--
		p.mu.Unlock()
		return errors.New("broker unavailable")
	}
	p.mu.Unlock()
	var msg domain.Occupancy
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	select {
	case p.out <- published{topic: topic, msg: msg}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *fakePublisher) Close() {}

func receive(t *testing.T, ch <-chan published) published {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a publish")
		return published{}
	}
}

func TestRunPublishesEachNewReading(t *testing.T) {
	t.Parallel()
	pools := newFakePools()
	pub := &fakePublisher{out: make(chan published, 16)}
	uc := usecase.NewInteractor(pools, pub, watchdto.Options{Interval: 20 * time.Millisecond, TopicPrefix: "pw", Ceiling: 10}, clock.Fixed(time.Unix(0, 0)), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx) }()

	first := receive(t, pub.out)
	if first.topic != "pw/pools/1/occupancy" || first.msg.PoolName != "North" || first.msg.Level != "low" {
		t.Fatalf("unexpected first publish %+v", first)
	}
	second := receive(t, pub.out)
	if second.msg.VisitorCount <= first.msg.VisitorCount {
		t.Fatalf("expected a newer reading, got %d after %d", second.msg.VisitorCount, first.msg.VisitorCount)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats := uc.Stats(); stats.Published < 2 || stats.Failed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	pools.mu.Lock()
	defer pools.mu.Unlock()
	if pools.loads != 1 {
		t.Fatalf("pools should load once, got %d", pools.loads)
	}
}

func TestPublishFailureIsRetriedWithNextSnapshot(t *testing.T) {
	t.Parallel()
	pools := newFakePools()
	pub := &fakePublisher{failures: 1, out: make(chan published, 16)}
	uc := usecase.NewInteractor(pools, pub, watchdto.Options{Interval: 20 * time.Millisecond, TopicPrefix: "pw"}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx) }()

	receive(t, pub.out)
	cancel()
	<-done
	if stats := uc.Stats(); stats.Failed != 1 || stats.Published < 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
