package out

import (
	"github.com/charmbracelet/glamour"

	analyticsout "poolwatch/internal/modules/analytics/port/out"
)

// GlamourRenderer styles markdown for a terminal of the given width.
type GlamourRenderer struct {
	renderer *glamour.TermRenderer
}

// NewGlamourRenderer uses style "auto" to follow the terminal background
// unless a named style ("dark", "light", "notty") is given. A width of 0
// disables wrapping.
func NewGlamourRenderer(style string, width int) (analyticsout.Renderer, error) {
	if style == "" {
		style = "auto"
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &GlamourRenderer{renderer: r}, nil
}

func (g *GlamourRenderer) Render(markdown string) (string, error) {
	return g.renderer.Render(markdown)
}
