package domain

import (
	"fmt"
	"time"

	apperrors "poolwatch/internal/platform/errors"
	"poolwatch/internal/platform/timestamp"
	"poolwatch/internal/platform/weekday"
)

// Backend bounds for the two listing endpoints.
const (
	DefaultListLimit = 100
	MaxListLimit     = 10000
	DefaultPageLimit = 50
	MaxPageLimit     = 1000
)

// Record is one scraped occupancy reading.
type Record struct {
	ID           int            `json:"id"`
	PoolID       int            `json:"pool_id"`
	Timestamp    timestamp.Time `json:"timestamp"`
	Weekday      string         `json:"weekday"`
	VisitorCount int            `json:"visitor_count"`
	WeekNumber   *int           `json:"week_number,omitempty"`
	CreatedAt    timestamp.Time `json:"created_at"`
}

type Latest struct {
	PoolID       int            `json:"pool_id"`
	PoolName     string         `json:"pool_name"`
	VisitorCount int            `json:"visitor_count"`
	Timestamp    timestamp.Time `json:"timestamp"`
	Weekday      string         `json:"weekday"`
}

// Page is one slice of the paginated-record contract.
type Page struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
	HasMore bool     `json:"has_more"`
}

// NextOffset is where the following page starts. Records actually received
// are counted rather than the requested limit, since the backend may cap it.
func (p Page) NextOffset() int {
	return p.Offset + len(p.Records)
}

type Count struct {
	Count  int  `json:"count"`
	PoolID *int `json:"pool_id"`
}

// Filter narrows a record query. Zero values mean "not set".
type Filter struct {
	PoolID    *int
	StartDate *time.Time
	EndDate   *time.Time
	Weekday   string
	Limit     *int
	Offset    *int
}

// Normalize canonicalizes the weekday and checks the bounds the backend
// enforces, with maxLimit depending on the endpoint.
func (f Filter) Normalize(maxLimit int) (Filter, error) {
	day, err := weekday.Parse(f.Weekday)
	if err != nil {
		return Filter{}, err
	}
	f.Weekday = day
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > maxLimit) {
		return Filter{}, invalid(fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}
	if f.Offset != nil && *f.Offset < 0 {
		return Filter{}, invalid("offset must not be negative")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return Filter{}, invalid("end date is before start date")
	}
	return f, nil
}

// WithOffset returns a copy starting at offset.
func (f Filter) WithOffset(offset int) Filter {
	f.Offset = &offset
	return f
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, msg)
}
