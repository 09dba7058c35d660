package domain_test

import (
	"errors"
	"testing"

	"poolwatch/internal/modules/analytics/domain"
	"poolwatch/internal/platform/crowd"
	apperrors "poolwatch/internal/platform/errors"
)

func TestGridPlacesCellsByWeekdayAndHour(t *testing.T) {
	t.Parallel()
	h := domain.Heatmap{
		Data: []domain.HeatmapCell{
			{Weekday: "Sunday", Hour: 18, Value: 12},
			{Weekday: "Monday", Hour: 6, Value: 3},
			{Weekday: "Monday", Hour: 18, Value: 40},
			{Weekday: "Holiday", Hour: 7, Value: 99},
		},
		MinValue: 3,
		MaxValue: 40,
	}
	g := h.Grid()
	if len(g.Hours) != 3 || g.Hours[0] != 6 || g.Hours[1] != 7 || g.Hours[2] != 18 {
		t.Fatalf("unexpected hours %v", g.Hours)
	}
	if s := g.Rows[0][2]; !s.Present || s.Value != 40 {
		t.Fatalf("monday 18h: %+v", s)
	}
	if s := g.Rows[6][2]; !s.Present || s.Value != 12 {
		t.Fatalf("sunday 18h: %+v", s)
	}
	if g.Rows[2][0].Present {
		t.Fatal("wednesday should be empty")
	}
	for day := range g.Rows {
		if g.Rows[day][1].Present {
			t.Fatalf("unknown weekday cell placed on row %d", day)
		}
	}
}

func TestNormalizeUsesDeclaredBounds(t *testing.T) {
	t.Parallel()
	h := domain.Heatmap{MinValue: 10, MaxValue: 50}
	cases := map[float64]float64{10: 0, 30: 0.5, 50: 1, 0: 0, 80: 1}
	for v, want := range cases {
		if got := h.Normalize(v); got != want {
			t.Fatalf("normalize(%v) = %v, want %v", v, got, want)
		}
	}
	if h.Level(49) != crowd.Full || h.Level(11) != crowd.Low {
		t.Fatal("unexpected levels")
	}
	flat := domain.Heatmap{MinValue: 5, MaxValue: 5}
	if flat.Normalize(5) != 0 {
		t.Fatal("flat heatmap should normalize to 0")
	}
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()
	for raw, want := range map[string]domain.Period{"": domain.Weekly, "Weekly": domain.Weekly, "monthly": domain.Monthly} {
		got, err := domain.ParsePeriod(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: %v %v", raw, got, err)
		}
	}
	if _, err := domain.ParsePeriod("daily"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
