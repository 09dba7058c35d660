package dto

import "time"

type PoolOutput struct {
	ID                    int        `json:"id" yaml:"id"`
	Name                  string     `json:"name" yaml:"name"`
	URL                   string     `json:"url" yaml:"url"`
	ElementID             string     `json:"element_id" yaml:"element_id"`
	Timezone              string     `json:"timezone" yaml:"timezone"`
	ScrapeStartTime       string     `json:"scrape_start_time" yaml:"scrape_start_time"`
	ScrapeEndTime         string     `json:"scrape_end_time" yaml:"scrape_end_time"`
	ScrapeIntervalMinutes int        `json:"scrape_interval_minutes" yaml:"scrape_interval_minutes"`
	IsActive              bool       `json:"is_active" yaml:"is_active"`
	CreatedAt             time.Time  `json:"created_at" yaml:"created_at"`
	LatestVisitorCount    *int       `json:"latest_visitor_count,omitempty" yaml:"latest_visitor_count,omitempty"`
	LatestReadingTime     *time.Time `json:"latest_reading_time,omitempty" yaml:"latest_reading_time,omitempty"`
	TotalRecords          int        `json:"total_records" yaml:"total_records"`
}

type LatestVisitorOutput struct {
	PoolID       int       `json:"pool_id" yaml:"pool_id"`
	PoolName     string    `json:"pool_name" yaml:"pool_name"`
	VisitorCount int       `json:"visitor_count" yaml:"visitor_count"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Weekday      string    `json:"weekday" yaml:"weekday"`
}

type RegistryOutput struct {
	Pools          []PoolOutput          `json:"pools" yaml:"pools"`
	LatestVisitors []LatestVisitorOutput `json:"latest_visitors" yaml:"latest_visitors"`
	SelectedPoolID *int                  `json:"selected_pool_id" yaml:"selected_pool_id"`
	Loading        bool                  `json:"loading" yaml:"loading"`
	Error          string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// CreatePoolInput leaves schedule fields empty to take the backend defaults.
// IsActive defaults to true when nil.
type CreatePoolInput struct {
	Name                  string
	URL                   string
	ElementID             string
	Timezone              string
	ScrapeStartTime       string
	ScrapeEndTime         string
	ScrapeIntervalMinutes int
	IsActive              *bool
}

type UpdatePoolInput struct {
	Name                  *string
	URL                   *string
	ElementID             *string
	Timezone              *string
	ScrapeStartTime       *string
	ScrapeEndTime         *string
	ScrapeIntervalMinutes *int
	IsActive              *bool
}

type CurrentReadingOutput struct {
	PoolID       int        `json:"pool_id" yaml:"pool_id"`
	PoolName     string     `json:"pool_name" yaml:"pool_name"`
	VisitorCount *int       `json:"visitor_count" yaml:"visitor_count"`
	Timestamp    *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Weekday      string     `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	Message      string     `json:"message,omitempty" yaml:"message,omitempty"`
}

type ScrapeOutput struct {
	PoolID   int    `json:"pool_id" yaml:"pool_id"`
	PoolName string `json:"pool_name,omitempty" yaml:"pool_name,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
	TaskID   string `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}
