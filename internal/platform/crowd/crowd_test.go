package crowd_test

import (
	"math"
	"testing"

	"poolwatch/internal/platform/crowd"
)

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   float64
		want crowd.Level
	}{
		{-1, crowd.Low},
		{0, crowd.Low},
		{0.24999, crowd.Low},
		{0.25, crowd.Moderate},
		{0.49999, crowd.Moderate},
		{0.5, crowd.High},
		{0.74999, crowd.High},
		{0.75, crowd.Full},
		{1, crowd.Full},
		{7, crowd.Full},
		{math.NaN(), crowd.Full},
	}
	for _, tc := range cases {
		if got := crowd.Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	t.Parallel()
	rank := map[crowd.Level]int{}
	for i, l := range crowd.Levels {
		rank[l] = i
	}
	prev := crowd.Classify(-0.5)
	for v := -0.5; v <= 1.5; v += 0.001 {
		cur := crowd.Classify(v)
		if rank[cur] < rank[prev] {
			t.Fatalf("severity decreased at %v: %s after %s", v, cur, prev)
		}
		prev = cur
	}
}

func TestLevelColorsAreDistinct(t *testing.T) {
	t.Parallel()
	seen := map[crowd.Color]crowd.Level{}
	for i, l := range crowd.Levels {
		c := l.Color()
		if other, ok := seen[c]; ok {
			t.Fatalf("%s and %s share colour %s", l, other, c)
		}
		seen[c] = l
		if crowd.HeatmapColors[i] != c {
			t.Fatalf("heatmap colour %d = %s, want %s", i, crowd.HeatmapColors[i], c)
		}
	}
}

func TestColorFromCountMatchesClassifiedRatio(t *testing.T) {
	t.Parallel()
	for _, ceiling := range []float64{10, 100, 250} {
		for count := 0.0; count <= ceiling*2; count++ {
			want := crowd.Classify(math.Min(count/ceiling, 1)).Color()
			if got := crowd.ColorFromCount(count, ceiling); got != want {
				t.Fatalf("ColorFromCount(%v,%v) = %s, want %s", count, ceiling, got, want)
			}
		}
	}
	if got := crowd.ColorFromCount(500, 100); got != crowd.ColorFull {
		t.Fatalf("over-capacity count must saturate at full, got %s", got)
	}
}

func TestNonPositiveCeilingUsesDefault(t *testing.T) {
	t.Parallel()
	if got := crowd.LevelFromCount(30, 0); got != crowd.Moderate {
		t.Fatalf("expected moderate with default ceiling, got %s", got)
	}
}

func TestCrowdGradientIsIdempotent(t *testing.T) {
	t.Parallel()
	b := crowd.Bounds{Top: 12, Bottom: 240}
	first := crowd.CrowdGradient(b, 0.6)
	second := crowd.CrowdGradient(b, 0.6)
	if len(first.Stops) != 2 || len(second.Stops) != 2 {
		t.Fatalf("expected two stops, got %d and %d", len(first.Stops), len(second.Stops))
	}
	for i := range first.Stops {
		if first.Stops[i] != second.Stops[i] {
			t.Fatalf("stop %d differs: %+v vs %+v", i, first.Stops[i], second.Stops[i])
		}
	}
	if first.Stops[0].Color != crowd.ColorHigh || first.Stops[1].Color != crowd.ColorHigh+"10" {
		t.Fatalf("unexpected stops %+v", first.Stops)
	}
	if first.Y0 != 12 || first.Y1 != 240 || first.X0 != 0 || first.X1 != 0 {
		t.Fatalf("unexpected geometry %+v", first)
	}
}

func TestAreaGradientDefaults(t *testing.T) {
	t.Parallel()
	g := crowd.AreaGradient(crowd.Bounds{Top: 0, Bottom: 100}, "", "")
	if g.Stops[0].Color != crowd.Primary || g.Stops[1].Color != crowd.PrimaryFaded {
		t.Fatalf("unexpected default stops %+v", g.Stops)
	}
}
