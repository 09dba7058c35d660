package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"poolwatch/internal/modules/pools/domain"
	poolsdto "poolwatch/internal/modules/pools/dto"
	poolsin "poolwatch/internal/modules/pools/port/in"
	"poolwatch/internal/modules/pools/service"
	"poolwatch/internal/modules/pools/usecase"
	apperrors "poolwatch/internal/platform/errors"
)

type fakePoolAPI struct {
	mu        sync.Mutex
	pools     []domain.Pool
	latest    []domain.LatestVisitor
	listErr   error
	latestErr error
	writeErr  error
	created   domain.Pool
	scraped   []int
	// gates parks the next update of a pool id until the channel is closed.
	gates   map[int]chan struct{}
	entered chan int
	// deleteGate parks the next delete the same way.
	deleteGate chan struct{}
}

func (f *fakePoolAPI) ListPools(context.Context) ([]domain.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Pool(nil), f.pools...), nil
}

func (f *fakePoolAPI) GetPool(_ context.Context, id int) (domain.Pool, error) {
	for _, p := range f.pools {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Pool{}, errors.New("Pool not found")
}

func (f *fakePoolAPI) CreatePool(_ context.Context, spec domain.PoolSpec) (domain.Pool, error) {
	if f.writeErr != nil {
		return domain.Pool{}, f.writeErr
	}
	created := f.created
	created.Name = spec.Name
	created.URL = spec.URL
	return created, nil
}

func (f *fakePoolAPI) UpdatePool(_ context.Context, id int, patch domain.PoolPatch) (domain.PoolPatch, error) {
	f.mu.Lock()
	gate := f.gates[id]
	delete(f.gates, id)
	f.mu.Unlock()
	if gate != nil {
		f.entered <- id
		<-gate
	}
	if f.writeErr != nil {
		return domain.PoolPatch{}, f.writeErr
	}
	return patch, nil
}

func (f *fakePoolAPI) DeletePool(_ context.Context, id int) error {
	f.mu.Lock()
	gate := f.deleteGate
	f.deleteGate = nil
	f.mu.Unlock()
	if gate != nil {
		f.entered <- id
		<-gate
	}
	return f.writeErr
}

func (f *fakePoolAPI) TriggerScrape(_ context.Context, id int) (domain.ScrapeAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == 13 {
		return domain.ScrapeAck{}, errors.New("Pool not found")
	}
	f.scraped = append(f.scraped, id)
	return domain.ScrapeAck{Message: "Scrape task queued", TaskID: "task-1", PoolID: id}, nil
}

func (f *fakePoolAPI) CurrentReading(_ context.Context, id int) (domain.CurrentReading, error) {
	return domain.CurrentReading{PoolID: id, PoolName: "North", Message: "No visitor data available"}, nil
}

func (f *fakePoolAPI) LatestVisitors(context.Context) ([]domain.LatestVisitor, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func twoPools() []domain.Pool {
	count := 37
	return []domain.Pool{
		{ID: 1, Name: "North", URL: "https://north.example", ElementID: "count", Timezone: "CET", ScrapeIntervalMinutes: 10, IsActive: true, LatestVisitorCount: &count, TotalRecords: 1200},
		{ID: 2, Name: "South", URL: "https://south.example", ElementID: "count", Timezone: "CET", ScrapeIntervalMinutes: 15, IsActive: true, TotalRecords: 300},
	}
}

func newRegistry(api *fakePoolAPI) poolsin.Usecase {
	return usecase.NewInteractor(api, service.NewBulkScraper(api, 0, nil), nil)
}

func selectedID(s poolsdto.RegistryOutput) int {
	if s.SelectedPoolID == nil {
		return 0
	}
	return *s.SelectedPoolID
}

func TestLoadPoolsAutoSelectsAndDeleteReselects(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)

	uc.LoadPools(context.Background())
	if got := selectedID(uc.State().Get()); got != 1 {
		t.Fatalf("expected pool 1 auto-selected, got %d", got)
	}
	if err := uc.DeletePool(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	state := uc.State().Get()
	if got := selectedID(state); got != 2 || len(state.Pools) != 1 {
		t.Fatalf("expected pool 2 selected after delete, got %d (%d pools)", got, len(state.Pools))
	}
	if err := uc.DeletePool(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if state := uc.State().Get(); state.SelectedPoolID != nil || len(state.Pools) != 0 {
		t.Fatalf("expected empty registry, got %+v", state)
	}
}

func TestLoadPoolsFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())

	api.mu.Lock()
	api.listErr = errors.New("Network error")
	api.mu.Unlock()
	uc.LoadPools(context.Background())

	state := uc.State().Get()
	if len(state.Pools) != 2 || state.Error != "Network error" || state.Loading {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestLoadPoolsKeepsExistingSelection(t *testing.T) {
	t.Parallel()
	uc := newRegistry(&fakePoolAPI{pools: twoPools()})
	uc.SelectPool(2)
	uc.LoadPools(context.Background())
	if got := selectedID(uc.State().Get()); got != 2 {
		t.Fatalf("expected selection kept at 2, got %d", got)
	}
}

func TestSelectPoolDoesNotValidate(t *testing.T) {
	t.Parallel()
	uc := newRegistry(&fakePoolAPI{})
	uc.SelectPool(404)
	if got := selectedID(uc.State().Get()); got != 404 {
		t.Fatalf("expected unvalidated selection, got %d", got)
	}
}

func TestLoadLatestVisitorsNeverSurfacesErrors(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{latest: []domain.LatestVisitor{{PoolID: 1, PoolName: "North", VisitorCount: 12}}}
	uc := newRegistry(api)
	uc.LoadLatestVisitors(context.Background())
	if got := uc.State().Get().LatestVisitors; len(got) != 1 || got[0].VisitorCount != 12 {
		t.Fatalf("unexpected latest visitors %+v", got)
	}

	api.latestErr = errors.New("Network error")
	uc.LoadLatestVisitors(context.Background())
	state := uc.State().Get()
	if state.Error != "" || len(state.LatestVisitors) != 1 {
		t.Fatalf("failure must be silent and keep the snapshot, got %+v", state)
	}
}

func TestCreatePoolAppendsWithZeroRecords(t *testing.T) {
	t.Parallel()
	count := 99
	api := &fakePoolAPI{pools: twoPools(), created: domain.Pool{ID: 3, TotalRecords: 777, LatestVisitorCount: &count}}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())

	created, err := uc.CreatePool(context.Background(), poolsdto.CreatePoolInput{Name: "East", URL: "https://east.example", ElementID: "count"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 3 || created.TotalRecords != 0 || created.LatestVisitorCount != nil {
		t.Fatalf("unexpected created pool %+v", created)
	}
	state := uc.State().Get()
	if len(state.Pools) != 3 || state.Pools[2].ID != 3 || state.Pools[2].TotalRecords != 0 {
		t.Fatalf("expected exactly one appended pool with zero records, got %+v", state.Pools)
	}
}

func TestCreatePoolFailureLeavesCache(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())
	api.writeErr = errors.New("Pool with this name already exists")

	if _, err := uc.CreatePool(context.Background(), poolsdto.CreatePoolInput{Name: "North", URL: "https://x", ElementID: "c"}); err == nil || err.Error() != "Pool with this name already exists" {
		t.Fatalf("expected backend error, got %v", err)
	}
	if _, err := uc.CreatePool(context.Background(), poolsdto.CreatePoolInput{Name: "", URL: "https://x", ElementID: "c"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected local validation error, got %v", err)
	}
	if got := len(uc.State().Get().Pools); got != 2 {
		t.Fatalf("cache mutated on failure: %d pools", got)
	}
}

func TestUpdatePoolMergesReturnedFields(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())
	before := uc.State().Get().Pools[0]

	name := "X"
	merged, err := uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	after := uc.State().Get().Pools[0]
	if after.Name != "X" || merged.Name != "X" {
		t.Fatalf("name not merged: cache=%q returned=%q", after.Name, merged.Name)
	}
	if after.URL != before.URL || after.ElementID != before.ElementID || after.Timezone != before.Timezone ||
		after.ScrapeIntervalMinutes != before.ScrapeIntervalMinutes || after.IsActive != before.IsActive ||
		after.TotalRecords != before.TotalRecords || after.LatestVisitorCount == nil || *after.LatestVisitorCount != 37 {
		t.Fatalf("other fields changed: before=%+v after=%+v", before, after)
	}
}

func TestUpdatePoolFailureLeavesCache(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())
	api.writeErr = errors.New("Not enough permissions")

	name := "X"
	if _, err := uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &name}); err == nil {
		t.Fatalf("expected error")
	}
	if got := uc.State().Get().Pools[0].Name; got != "North" {
		t.Fatalf("cache mutated on failure: %q", got)
	}
}

func TestDeletePoolFailureLeavesCache(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())
	api.writeErr = errors.New("Pool not found")
	if err := uc.DeletePool(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
	state := uc.State().Get()
	if len(state.Pools) != 2 || selectedID(state) != 1 {
		t.Fatalf("cache mutated on failure: %+v", state)
	}
}

func TestStaleUpdateIsNotCommitted(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	api := &fakePoolAPI{pools: twoPools(), gates: map[int]chan struct{}{1: gate}, entered: make(chan int, 1)}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())

	first := "First"
	done := make(chan struct{})
	go func() {
		defer close(done)
		out, err := uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &first})
		if err != nil || out.Name != "First" {
			t.Errorf("stale caller should still get its own result: %+v %v", out, err)
		}
	}()
	<-api.entered

	second := "Second"
	if _, err := uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &second}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	close(gate)
	<-done

	if got := uc.State().Get().Pools[0].Name; got != "Second" {
		t.Fatalf("stale response overwrote newer state: %q", got)
	}
}

func TestStaleUpdateAfterDeleteIsNotCommitted(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	api := &fakePoolAPI{pools: twoPools(), gates: map[int]chan struct{}{1: gate}, entered: make(chan int, 1)}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())

	name := "Ghost"
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &name})
	}()
	<-api.entered
	if err := uc.DeletePool(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(gate)
	<-done

	state := uc.State().Get()
	if len(state.Pools) != 1 || state.Pools[0].ID != 2 {
		t.Fatalf("deleted pool came back: %+v", state.Pools)
	}
}

func TestConfirmedDeleteWinsOverNewerUpdate(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	api := &fakePoolAPI{pools: twoPools(), deleteGate: gate, entered: make(chan int, 1)}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())

	deleted := make(chan error, 1)
	go func() {
		deleted <- uc.DeletePool(context.Background(), 1)
	}()
	<-api.entered

	name := "Renamed"
	if _, err := uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := uc.State().Get().Pools[0].Name; got != "Renamed" {
		t.Fatalf("expected update applied while delete is pending, got %q", got)
	}
	close(gate)
	if err := <-deleted; err != nil {
		t.Fatalf("delete: %v", err)
	}

	state := uc.State().Get()
	if len(state.Pools) != 1 || state.Pools[0].ID != 2 {
		t.Fatalf("deleted pool still cached: %+v", state.Pools)
	}
	if got := selectedID(state); got != 2 {
		t.Fatalf("expected selection to move to pool 2, got %d", got)
	}

	late := "Late"
	if _, err := uc.UpdatePool(context.Background(), 1, poolsdto.UpdatePoolInput{Name: &late}); err != nil {
		t.Fatalf("late update: %v", err)
	}
	if len(uc.State().Get().Pools) != 1 {
		t.Fatalf("update after delete resurrected the pool")
	}
}

func TestTriggerScrapeDoesNotTouchCache(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())
	before := uc.State().Get()

	ack, err := uc.TriggerScrape(context.Background(), 2)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if ack.TaskID != "task-1" || ack.Message != "Scrape task queued" || ack.PoolName != "South" {
		t.Fatalf("unexpected ack %+v", ack)
	}
	after := uc.State().Get()
	if after.Pools[1].TotalRecords != before.Pools[1].TotalRecords || len(after.Pools) != len(before.Pools) {
		t.Fatalf("scrape mutated the cache")
	}
	if _, err := uc.TriggerScrape(context.Background(), 13); err == nil {
		t.Fatalf("expected scrape error to propagate")
	}
}

func TestScrapeAllSkipsInactiveAndReportsFailures(t *testing.T) {
	t.Parallel()
	list := append(twoPools(),
		domain.Pool{ID: 3, Name: "Closed", IsActive: false},
		domain.Pool{ID: 13, Name: "Gone", IsActive: true},
	)
	api := &fakePoolAPI{pools: list}
	uc := newRegistry(api)
	uc.LoadPools(context.Background())

	results := uc.ScrapeAll(context.Background())
	if len(results) != 3 {
		t.Fatalf("expected 3 active pools scraped, got %+v", results)
	}
	if results[0].TaskID != "task-1" || results[0].Error != "" {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[2].PoolID != 13 || results[2].Error != "Pool not found" {
		t.Fatalf("expected failure row for pool 13, got %+v", results[2])
	}
	if len(api.scraped) != 2 {
		t.Fatalf("unexpected scrape calls %v", api.scraped)
	}
}

func TestScrapeAllStopsOnCanceledContext(t *testing.T) {
	t.Parallel()
	api := &fakePoolAPI{pools: twoPools()}
	uc := usecase.NewInteractor(api, service.NewBulkScraper(api, time.Hour, nil), nil)
	uc.LoadPools(context.Background())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := uc.ScrapeAll(ctx)
	for _, r := range results {
		if r.Error == "" {
			t.Fatalf("expected every row to carry the cancellation, got %+v", results)
		}
	}
	if len(api.scraped) != 0 {
		t.Fatalf("no request should be sent after cancellation, got %v", api.scraped)
	}
}

func TestCurrentReadingWithoutData(t *testing.T) {
	t.Parallel()
	uc := newRegistry(&fakePoolAPI{})
	reading, err := uc.CurrentReading(context.Background(), 1)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if reading.VisitorCount != nil || reading.Timestamp != nil || reading.Message == "" {
		t.Fatalf("unexpected reading %+v", reading)
	}
}
