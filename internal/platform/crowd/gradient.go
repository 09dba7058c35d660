package crowd

// Bounds is the vertical extent of the drawing surface a gradient spans.
type Bounds struct {
	Top    float64
	Bottom float64
}

type Stop struct {
	Offset float64
	Color  Color
}

// Gradient is a vertical two-stop linear gradient from (0,Top) to (0,Bottom).
type Gradient struct {
	X0, Y0 float64
	X1, Y1 float64
	Stops  []Stop
}

// crowdFadeAlpha is the hex alpha of the bottom stop of a crowd gradient.
const crowdFadeAlpha = "10"

// AreaGradient builds a top-to-bottom gradient between two arbitrary colours.
// Empty colours fall back to the primary palette colour and its faded form.
func AreaGradient(b Bounds, start, end Color) Gradient {
	if start == "" {
		start = Primary
	}
	if end == "" {
		end = PrimaryFaded
	}
	return Gradient{
		X0: 0, Y0: b.Top,
		X1: 0, Y1: b.Bottom,
		Stops: []Stop{{Offset: 0, Color: start}, {Offset: 1, Color: end}},
	}
}

// CrowdGradient fades the colour of normalized's crowd level towards
// transparency.
func CrowdGradient(b Bounds, normalized float64) Gradient {
	c := ColorFor(normalized)
	return AreaGradient(b, c, c.Faded(crowdFadeAlpha))
}
