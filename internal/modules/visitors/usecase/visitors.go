package usecase

import (
	"context"
	"io"

	hclog "github.com/hashicorp/go-hclog"

	"poolwatch/internal/modules/visitors/domain"
	visitorsdto "poolwatch/internal/modules/visitors/dto"
	visitorsin "poolwatch/internal/modules/visitors/port/in"
	visitorsout "poolwatch/internal/modules/visitors/port/out"
	"poolwatch/internal/modules/visitors/service"
)

type Interactor struct {
	api   visitorsout.VisitorAPI
	pager *service.Pager
	log   hclog.Logger
}

func NewInteractor(api visitorsout.VisitorAPI, logger hclog.Logger) visitorsin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{api: api, pager: service.NewPager(api), log: logger.Named("visitors")}
}

func (i *Interactor) List(ctx context.Context, input visitorsdto.FilterInput) ([]visitorsdto.RecordOutput, error) {
	filter, err := toFilter(input).Normalize(domain.MaxListLimit)
	if err != nil {
		return nil, err
	}
	records, err := i.api.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toRecordOutputs(records), nil
}

func (i *Interactor) Paginated(ctx context.Context, input visitorsdto.FilterInput) (visitorsdto.PageOutput, error) {
	filter, err := toFilter(input).Normalize(domain.MaxPageLimit)
	if err != nil {
		return visitorsdto.PageOutput{}, err
	}
	page, err := i.api.Paginated(ctx, filter)
	if err != nil {
		return visitorsdto.PageOutput{}, err
	}
	return visitorsdto.PageOutput{
		Records: toRecordOutputs(page.Records),
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: page.HasMore,
	}, nil
}

func (i *Interactor) Latest(ctx context.Context) ([]visitorsdto.LatestOutput, error) {
	latest, err := i.api.Latest(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]visitorsdto.LatestOutput, 0, len(latest))
	for _, l := range latest {
		out = append(out, visitorsdto.LatestOutput{
			PoolID:       l.PoolID,
			PoolName:     l.PoolName,
			VisitorCount: l.VisitorCount,
			Timestamp:    l.Timestamp.Time,
			Weekday:      l.Weekday,
		})
	}
	return out, nil
}

func (i *Interactor) Today(ctx context.Context, poolID int) ([]visitorsdto.RecordOutput, error) {
	records, err := i.api.Today(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return toRecordOutputs(records), nil
}

func (i *Interactor) Count(ctx context.Context, poolID *int) (visitorsdto.CountOutput, error) {
	count, err := i.api.Count(ctx, poolID)
	if err != nil {
		return visitorsdto.CountOutput{}, err
	}
	return visitorsdto.CountOutput{Count: count.Count, PoolID: count.PoolID}, nil
}

func (i *Interactor) Walk(ctx context.Context, input visitorsdto.FilterInput, fn func(visitorsdto.RecordOutput) error) error {
	filter, err := toFilter(input).Normalize(domain.MaxPageLimit)
	if err != nil {
		return err
	}
	return i.pager.Walk(ctx, filter, func(r domain.Record) error {
		return fn(toRecordOutput(r))
	})
}

func (i *Interactor) Export(ctx context.Context, input visitorsdto.FilterInput, w io.Writer) (int, error) {
	filter, err := toFilter(input).Normalize(domain.MaxPageLimit)
	if err != nil {
		return 0, err
	}
	csvOut := service.NewCSVWriter(w)
	if err := i.pager.Walk(ctx, filter, csvOut.Write); err != nil {
		return 0, err
	}
	rows, err := csvOut.Flush()
	if err != nil {
		return rows, err
	}
	i.log.Debug("visitor export finished", "rows", rows)
	return rows, nil
}

func toFilter(in visitorsdto.FilterInput) domain.Filter {
	return domain.Filter{
		PoolID:    in.PoolID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Weekday:   in.Weekday,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
}

func toRecordOutputs(records []domain.Record) []visitorsdto.RecordOutput {
	out := make([]visitorsdto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordOutput(r))
	}
	return out
}

func toRecordOutput(r domain.Record) visitorsdto.RecordOutput {
	return visitorsdto.RecordOutput{
		ID:           r.ID,
		PoolID:       r.PoolID,
		Timestamp:    r.Timestamp.Time,
		Weekday:      r.Weekday,
		VisitorCount: r.VisitorCount,
		WeekNumber:   r.WeekNumber,
		CreatedAt:    r.CreatedAt.Time,
	}
}
