package domain

import (
	"sort"

	"poolwatch/internal/platform/crowd"
	"poolwatch/internal/platform/weekday"
)

type HeatmapCell struct {
	Weekday string  `json:"weekday"`
	Hour    int     `json:"hour"`
	Value   float64 `json:"value"`
}

// Heatmap values are backend averages; MinValue and MaxValue are the bounds
// it declared for colouring and are never recomputed here.
type Heatmap struct {
	PoolID   int           `json:"pool_id"`
	PoolName string        `json:"pool_name"`
	Data     []HeatmapCell `json:"data"`
	MinValue float64       `json:"min_value"`
	MaxValue float64       `json:"max_value"`
}

// Normalize maps v into [0,1] using the declared bounds. A flat heatmap
// normalizes everything to 0.
func (h Heatmap) Normalize(v float64) float64 {
	span := h.MaxValue - h.MinValue
	if span <= 0 {
		return 0
	}
	n := (v - h.MinValue) / span
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

func (h Heatmap) Level(v float64) crowd.Level {
	return crowd.Classify(h.Normalize(v))
}

// Slot is one weekday/hour position of a grid. Present is false when the
// backend sent no cell for it.
type Slot struct {
	Value   float64
	Present bool
}

// Grid lays the cells out as rows Monday to Sunday and columns for each
// hour that occurs in the data, ascending.
type Grid struct {
	Hours []int
	Rows  [7][]Slot
}

func (h Heatmap) Grid() Grid {
	seen := map[int]bool{}
	for _, c := range h.Data {
		seen[c.Hour] = true
	}
	g := Grid{Hours: make([]int, 0, len(seen))}
	for hour := range seen {
		g.Hours = append(g.Hours, hour)
	}
	sort.Ints(g.Hours)
	column := make(map[int]int, len(g.Hours))
	for i, hour := range g.Hours {
		column[hour] = i
	}
	for day := range g.Rows {
		g.Rows[day] = make([]Slot, len(g.Hours))
	}
	for _, c := range h.Data {
		day := weekday.Index(c.Weekday)
		if day < 0 {
			continue
		}
		g.Rows[day][column[c.Hour]] = Slot{Value: c.Value, Present: true}
	}
	return g
}
