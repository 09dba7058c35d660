package weekday_test

import (
	"errors"
	"testing"
	"time"

	apperrors "poolwatch/internal/platform/errors"
	"poolwatch/internal/platform/weekday"
)

func TestParseNormalizes(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"monday":   "Monday",
		" SUNDAY ": "Sunday",
		"wed":      "Wednesday",
		"":         "",
	}
	for raw, want := range cases {
		got, err := weekday.Parse(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", raw, want, got)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	t.Parallel()
	if _, err := weekday.Parse("Funday"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestIndexAndOf(t *testing.T) {
	t.Parallel()
	if weekday.Index("Monday") != 0 || weekday.Index("Sunday") != 6 || weekday.Index("sunday") != -1 {
		t.Fatal("unexpected index")
	}
	if got := weekday.Of(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)); got != "Sunday" {
		t.Fatalf("expected Sunday, got %s", got)
	}
}
