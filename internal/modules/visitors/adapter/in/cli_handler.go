package in

import (
	"context"
	"io"

	"poolwatch/internal/modules/visitors/dto"
	visitorsin "poolwatch/internal/modules/visitors/port/in"
)

type CLIHandler struct {
	usecase visitorsin.Usecase
}

func NewCLIHandler(usecase visitorsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, filter dto.FilterInput) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx, filter)
}

func (h CLIHandler) Page(ctx context.Context, filter dto.FilterInput) (dto.PageOutput, error) {
	return h.usecase.Paginated(ctx, filter)
}

// All collects every page into one slice.
func (h CLIHandler) All(ctx context.Context, filter dto.FilterInput) ([]dto.RecordOutput, error) {
	records := []dto.RecordOutput{}
	err := h.usecase.Walk(ctx, filter, func(r dto.RecordOutput) error {
		records = append(records, r)
		return nil
	})
	return records, err
}

func (h CLIHandler) Latest(ctx context.Context) ([]dto.LatestOutput, error) {
	return h.usecase.Latest(ctx)
}

func (h CLIHandler) Today(ctx context.Context, poolID int) ([]dto.RecordOutput, error) {
	return h.usecase.Today(ctx, poolID)
}

func (h CLIHandler) Count(ctx context.Context, poolID *int) (dto.CountOutput, error) {
	return h.usecase.Count(ctx, poolID)
}

func (h CLIHandler) Export(ctx context.Context, filter dto.FilterInput, w io.Writer) (int, error) {
	return h.usecase.Export(ctx, filter, w)
}
