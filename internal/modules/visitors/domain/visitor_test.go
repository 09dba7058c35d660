package domain_test

import (
	"errors"
	"testing"
	"time"

	"poolwatch/internal/modules/visitors/domain"
	apperrors "poolwatch/internal/platform/errors"
)

func intp(v int) *int { return &v }

func TestFilterNormalize(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	cases := map[string]struct {
		filter  domain.Filter
		max     int
		wantErr bool
	}{
		"empty":          {filter: domain.Filter{}, max: domain.MaxPageLimit},
		"weekday":        {filter: domain.Filter{Weekday: "fri"}, max: domain.MaxPageLimit},
		"bad weekday":    {filter: domain.Filter{Weekday: "someday"}, max: domain.MaxPageLimit, wantErr: true},
		"limit too big":  {filter: domain.Filter{Limit: intp(1001)}, max: domain.MaxPageLimit, wantErr: true},
		"list limit ok":  {filter: domain.Filter{Limit: intp(5000)}, max: domain.MaxListLimit},
		"zero limit":     {filter: domain.Filter{Limit: intp(0)}, max: domain.MaxListLimit, wantErr: true},
		"negative skip":  {filter: domain.Filter{Offset: intp(-1)}, max: domain.MaxListLimit, wantErr: true},
		"inverted dates": {filter: domain.Filter{StartDate: &start, EndDate: &end}, max: domain.MaxListLimit, wantErr: true},
	}
	for name, tc := range cases {
		got, err := tc.filter.Normalize(tc.max)
		if tc.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("%s: expected invalid input, got %v", name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if name == "weekday" && got.Weekday != "Friday" {
			t.Fatalf("weekday not canonical: %q", got.Weekday)
		}
	}
}

func TestPageNextOffsetCountsReceivedRecords(t *testing.T) {
	t.Parallel()
	page := domain.Page{Records: make([]domain.Record, 3), Limit: 50, Offset: 100, HasMore: true}
	if page.NextOffset() != 103 {
		t.Fatalf("expected 103, got %d", page.NextOffset())
	}
}
