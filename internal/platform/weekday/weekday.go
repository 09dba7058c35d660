// Package weekday handles the English weekday names the backend stores on
// every reading and accepts as a filter.
package weekday

import (
	"fmt"
	"strings"
	"time"

	apperrors "poolwatch/internal/platform/errors"
)

// Names lists the weekdays Monday first, the order heatmap rows use.
var Names = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Parse accepts a full or three-letter name in any case and returns the
// canonical spelling. An empty string stays empty.
func Parse(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", nil
	}
	for _, name := range Names {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: unknown weekday %q", apperrors.ErrInvalidInput, raw)
}

// Index returns the Monday-first position of a canonical name, or -1.
func Index(name string) int {
	for i, n := range Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Of returns the canonical name for t.
func Of(t time.Time) string {
	return t.Weekday().String()
}
