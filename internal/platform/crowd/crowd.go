// Package crowd maps occupancy to the dashboard's discrete crowd levels and
// their colours. Everything here is pure and deterministic.
package crowd

import "math"

type Level string

const (
	Low      Level = "low"
	Moderate Level = "moderate"
	High     Level = "high"
	Full     Level = "full"
)

// Levels lists every level from least to most crowded.
var Levels = []Level{Low, Moderate, High, Full}

// Color is a hex colour token, optionally with a trailing alpha byte.
type Color string

// ClearLane palette.
const (
	Primary      Color = "#006994"
	PrimaryHover Color = "#005577"
	PrimaryLight Color = "#0089c2"
	PrimaryDark  Color = "#004d6d"

	ColorLow      Color = "#4CD964"
	ColorModerate Color = "#5AC8FA"
	ColorHigh     Color = "#FF9500"
	ColorFull     Color = "#FF3B30"

	BgBase    Color = "#F5F7FA"
	BgSurface Color = "#FFFFFF"
	BgMuted   Color = "#EDF0F4"

	TextPrimary   Color = "#2C3E50"
	TextSecondary Color = "#5A6978"
	TextMuted     Color = "#8A96A3"

	Border Color = "#E2E8F0"

	// PrimaryFaded is the default bottom stop of an area gradient.
	PrimaryFaded Color = "rgba(0, 105, 148, 0.05)"
)

// HeatmapColors is indexed by level order.
var HeatmapColors = []Color{ColorLow, ColorModerate, ColorHigh, ColorFull}

// DefaultCeiling is the capacity assumed when a count has no explicit maximum.
const DefaultCeiling = 100

// Classify buckets a normalized occupancy value. Bounds are inclusive below
// and exclusive above; values outside [0,1] fall into the end buckets. NaN
// compares false against every threshold and so lands in Full.
func Classify(normalized float64) Level {
	switch {
	case normalized < 0.25:
		return Low
	case normalized < 0.5:
		return Moderate
	case normalized < 0.75:
		return High
	default:
		return Full
	}
}

func (l Level) Color() Color {
	switch l {
	case Low:
		return ColorLow
	case Moderate:
		return ColorModerate
	case High:
		return ColorHigh
	default:
		return ColorFull
	}
}

// ColorFor is Classify followed by Level.Color.
func ColorFor(normalized float64) Color {
	return Classify(normalized).Color()
}

// Ratio normalizes count against ceiling, saturating at 1. A non-positive
// ceiling falls back to DefaultCeiling.
func Ratio(count, ceiling float64) float64 {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return math.Min(count/ceiling, 1)
}

func LevelFromCount(count, ceiling float64) Level {
	return Classify(Ratio(count, ceiling))
}

func ColorFromCount(count, ceiling float64) Color {
	return ColorFor(Ratio(count, ceiling))
}

// Faded appends a two-digit hex alpha to a #RRGGBB colour.
func (c Color) Faded(alpha string) Color {
	return c + Color(alpha)
}
