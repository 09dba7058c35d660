package in

import (
	"context"
	"io"

	"poolwatch/internal/modules/visitors/dto"
)

// Usecase reads visitor records. Nothing here is cached.
type Usecase interface {
	List(ctx context.Context, filter dto.FilterInput) ([]dto.RecordOutput, error)
	Paginated(ctx context.Context, filter dto.FilterInput) (dto.PageOutput, error)
	Latest(ctx context.Context) ([]dto.LatestOutput, error)
	Today(ctx context.Context, poolID int) ([]dto.RecordOutput, error)
	Count(ctx context.Context, poolID *int) (dto.CountOutput, error)
	// Walk visits every record matching filter page by page, stopping at the
	// first error returned by fn.
	Walk(ctx context.Context, filter dto.FilterInput, fn func(dto.RecordOutput) error) error
	// Export writes every matching record as CSV and returns how many rows
	// were written.
	Export(ctx context.Context, filter dto.FilterInput, w io.Writer) (int, error)
}
