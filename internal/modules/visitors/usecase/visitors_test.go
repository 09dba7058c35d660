package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"poolwatch/internal/modules/visitors/domain"
	"poolwatch/internal/modules/visitors/dto"
	"poolwatch/internal/modules/visitors/usecase"
	apperrors "poolwatch/internal/platform/errors"
)

type fakeVisitorAPI struct {
	records  []domain.Record
	filters  []domain.Filter
	pageSize int
	err      error
}

func (f *fakeVisitorAPI) List(_ context.Context, filter domain.Filter) ([]domain.Record, error) {
	f.filters = append(f.filters, filter)
	return f.records, f.err
}

func (f *fakeVisitorAPI) Paginated(_ context.Context, filter domain.Filter) (domain.Page, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return domain.Page{}, f.err
	}
	offset := *filter.Offset
	end := offset + f.pageSize
	if end > len(f.records) {
		end = len(f.records)
	}
	return domain.Page{
		Records: f.records[offset:end],
		Total:   len(f.records),
		Limit:   f.pageSize,
		Offset:  offset,
		HasMore: end < len(f.records),
	}, nil
}

func (f *fakeVisitorAPI) Latest(context.Context) ([]domain.Latest, error) {
	return []domain.Latest{{PoolID: 1, PoolName: "North", VisitorCount: 5}}, f.err
}

func (f *fakeVisitorAPI) Today(_ context.Context, poolID int) ([]domain.Record, error) {
	return f.records, f.err
}

func (f *fakeVisitorAPI) Count(_ context.Context, poolID *int) (domain.Count, error) {
	return domain.Count{Count: len(f.records), PoolID: poolID}, f.err
}

func records(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{ID: i + 1, PoolID: 1, Weekday: "Monday", VisitorCount: 10 * i}
	}
	return out
}

func TestListNormalizesWeekdayBeforeSending(t *testing.T) {
	t.Parallel()
	api := &fakeVisitorAPI{records: records(2)}
	uc := usecase.NewInteractor(api, nil)
	out, err := uc.List(context.Background(), dto.FilterInput{Weekday: "tue"})
	if err != nil || len(out) != 2 {
		t.Fatalf("list: %v %+v", err, out)
	}
	if api.filters[0].Weekday != "Tuesday" {
		t.Fatalf("expected canonical weekday, got %q", api.filters[0].Weekday)
	}
}

func TestInvalidFilterNeverReachesBackend(t *testing.T) {
	t.Parallel()
	api := &fakeVisitorAPI{}
	uc := usecase.NewInteractor(api, nil)
	limit := 5000
	if _, err := uc.Paginated(context.Background(), dto.FilterInput{Limit: &limit}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.List(context.Background(), dto.FilterInput{Weekday: "holiday"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(api.filters) != 0 {
		t.Fatalf("backend called with %v", api.filters)
	}
}

func TestWalkVisitsEveryPage(t *testing.T) {
	t.Parallel()
	api := &fakeVisitorAPI{records: records(5), pageSize: 2}
	uc := usecase.NewInteractor(api, nil)
	var ids []int
	err := uc.Walk(context.Background(), dto.FilterInput{}, func(r dto.RecordOutput) error {
		ids = append(ids, r.ID)
		return nil
	})
	if err != nil || len(ids) != 5 || len(api.filters) != 3 {
		t.Fatalf("unexpected walk: ids=%v requests=%d err=%v", ids, len(api.filters), err)
	}
}

func TestExportWritesCSV(t *testing.T) {
	t.Parallel()
	api := &fakeVisitorAPI{records: records(3), pageSize: 2}
	uc := usecase.NewInteractor(api, nil)
	var buf bytes.Buffer
	rows, err := uc.Export(context.Background(), dto.FilterInput{}, &buf)
	if err != nil || rows != 3 {
		t.Fatalf("export: rows=%d err=%v", rows, err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines:\n%s", lines, buf.String())
	}
}

func TestExportPropagatesBackendError(t *testing.T) {
	t.Parallel()
	boom := errors.New("Network error")
	uc := usecase.NewInteractor(&fakeVisitorAPI{err: boom}, nil)
	if _, err := uc.Export(context.Background(), dto.FilterInput{}, &bytes.Buffer{}); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestCountAndLatestPassThrough(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeVisitorAPI{records: records(4)}, nil)
	pool := 1
	count, err := uc.Count(context.Background(), &pool)
	if err != nil || count.Count != 4 || *count.PoolID != 1 {
		t.Fatalf("unexpected count %+v %v", count, err)
	}
	latest, err := uc.Latest(context.Background())
	if err != nil || len(latest) != 1 || latest[0].PoolName != "North" {
		t.Fatalf("unexpected latest %+v %v", latest, err)
	}
}
