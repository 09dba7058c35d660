package service

import (
	"context"

	"poolwatch/internal/modules/visitors/domain"
	visitorsout "poolwatch/internal/modules/visitors/port/out"
)

// Pager follows the paginated-record contract until the backend reports no
// further records.
type Pager struct {
	api visitorsout.VisitorAPI
}

func NewPager(api visitorsout.VisitorAPI) *Pager {
	return &Pager{api: api}
}

// Walk starts at filter's offset (zero if unset). An empty page ends the walk
// even when has_more is set, so a misbehaving backend cannot loop forever.
func (p *Pager) Walk(ctx context.Context, filter domain.Filter, fn func(domain.Record) error) error {
	offset := 0
	if filter.Offset != nil {
		offset = *filter.Offset
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := p.api.Paginated(ctx, filter.WithOffset(offset))
		if err != nil {
			return err
		}
		for _, record := range page.Records {
			if err := fn(record); err != nil {
				return err
			}
		}
		if !page.HasMore || len(page.Records) == 0 {
			return nil
		}
		offset = page.NextOffset()
	}
}
