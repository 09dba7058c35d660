package dto

import "time"

// FilterInput mirrors the backend's query parameters. Nil or empty fields are
// not sent.
type FilterInput struct {
	PoolID    *int
	StartDate *time.Time
	EndDate   *time.Time
	Weekday   string
	Limit     *int
	Offset    *int
}

type RecordOutput struct {
	ID           int       `json:"id" yaml:"id"`
	PoolID       int       `json:"pool_id" yaml:"pool_id"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Weekday      string    `json:"weekday" yaml:"weekday"`
	VisitorCount int       `json:"visitor_count" yaml:"visitor_count"`
	WeekNumber   *int      `json:"week_number,omitempty" yaml:"week_number,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

type PageOutput struct {
	Records []RecordOutput `json:"records" yaml:"records"`
	Total   int            `json:"total" yaml:"total"`
	Limit   int            `json:"limit" yaml:"limit"`
	Offset  int            `json:"offset" yaml:"offset"`
	HasMore bool           `json:"has_more" yaml:"has_more"`
}

type LatestOutput struct {
	PoolID       int       `json:"pool_id" yaml:"pool_id"`
	PoolName     string    `json:"pool_name" yaml:"pool_name"`
	VisitorCount int       `json:"visitor_count" yaml:"visitor_count"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Weekday      string    `json:"weekday" yaml:"weekday"`
}

type CountOutput struct {
	Count  int  `json:"count" yaml:"count"`
	PoolID *int `json:"pool_id" yaml:"pool_id"`
}
