package out

import (
	"context"

	"poolwatch/internal/modules/visitors/domain"
)

type VisitorAPI interface {
	List(ctx context.Context, filter domain.Filter) ([]domain.Record, error)
	Paginated(ctx context.Context, filter domain.Filter) (domain.Page, error)
	Latest(ctx context.Context) ([]domain.Latest, error)
	Today(ctx context.Context, poolID int) ([]domain.Record, error)
	Count(ctx context.Context, poolID *int) (domain.Count, error)
}
