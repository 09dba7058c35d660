package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "poolwatch/internal/platform/errors"
	"poolwatch/internal/platform/timestamp"
)

const (
	DefaultTimezone       = "CET"
	DefaultScrapeStart    = "05:50"
	DefaultScrapeEnd      = "22:10"
	DefaultScrapeInterval = 10
	MinScrapeInterval     = 1
	MaxScrapeInterval     = 60
	maxNameLength         = 200
	maxElementIDLength    = 100
	maxTimezoneLength     = 50
)

var clockTime = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Pool is the client's cached copy of a monitored location. The Latest* and
// TotalRecords fields are computed by the backend and only ever read here.
type Pool struct {
	ID                    int             `json:"id"`
	Name                  string          `json:"name"`
	URL                   string          `json:"url"`
	ElementID             string          `json:"element_id"`
	Timezone              string          `json:"timezone"`
	ScrapeStartTime       string          `json:"scrape_start_time"`
	ScrapeEndTime         string          `json:"scrape_end_time"`
	ScrapeIntervalMinutes int             `json:"scrape_interval_minutes"`
	IsActive              bool            `json:"is_active"`
	CreatedAt             timestamp.Time  `json:"created_at"`
	LatestVisitorCount    *int            `json:"latest_visitor_count,omitempty"`
	LatestReadingTime     *timestamp.Time `json:"latest_reading_time,omitempty"`
	TotalRecords          int             `json:"total_records"`
}

// PoolSpec is what a client may send when creating a pool.
type PoolSpec struct {
	Name                  string `json:"name"`
	URL                   string `json:"url"`
	ElementID             string `json:"element_id"`
	Timezone              string `json:"timezone"`
	ScrapeStartTime       string `json:"scrape_start_time"`
	ScrapeEndTime         string `json:"scrape_end_time"`
	ScrapeIntervalMinutes int    `json:"scrape_interval_minutes"`
	IsActive              bool   `json:"is_active"`
}

// WithDefaults fills the optional schedule fields the backend would default.
func (s PoolSpec) WithDefaults() PoolSpec {
	if strings.TrimSpace(s.Timezone) == "" {
		s.Timezone = DefaultTimezone
	}
	if s.ScrapeStartTime == "" {
		s.ScrapeStartTime = DefaultScrapeStart
	}
	if s.ScrapeEndTime == "" {
		s.ScrapeEndTime = DefaultScrapeEnd
	}
	if s.ScrapeIntervalMinutes == 0 {
		s.ScrapeIntervalMinutes = DefaultScrapeInterval
	}
	return s
}

func (s PoolSpec) Validate() error {
	if err := validateName(s.Name); err != nil {
		return err
	}
	if strings.TrimSpace(s.URL) == "" {
		return invalid("url is required")
	}
	if err := validateElementID(s.ElementID); err != nil {
		return err
	}
	if utf8.RuneCountInString(s.Timezone) > maxTimezoneLength {
		return invalid("timezone is too long")
	}
	if err := validateClock("scrape start time", s.ScrapeStartTime); err != nil {
		return err
	}
	if err := validateClock("scrape end time", s.ScrapeEndTime); err != nil {
		return err
	}
	return validateInterval(s.ScrapeIntervalMinutes)
}

// PoolPatch is a partial pool. Nil fields are absent: they are neither sent
// nor merged.
type PoolPatch struct {
	Name                  *string `json:"name,omitempty"`
	URL                   *string `json:"url,omitempty"`
	ElementID             *string `json:"element_id,omitempty"`
	Timezone              *string `json:"timezone,omitempty"`
	ScrapeStartTime       *string `json:"scrape_start_time,omitempty"`
	ScrapeEndTime         *string `json:"scrape_end_time,omitempty"`
	ScrapeIntervalMinutes *int    `json:"scrape_interval_minutes,omitempty"`
	IsActive              *bool   `json:"is_active,omitempty"`
}

func (p PoolPatch) Empty() bool {
	return p == PoolPatch{}
}

func (p PoolPatch) Validate() error {
	if p.Empty() {
		return invalid("nothing to update")
	}
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.URL != nil && strings.TrimSpace(*p.URL) == "" {
		return invalid("url must not be empty")
	}
	if p.ElementID != nil {
		if err := validateElementID(*p.ElementID); err != nil {
			return err
		}
	}
	if p.Timezone != nil && utf8.RuneCountInString(*p.Timezone) > maxTimezoneLength {
		return invalid("timezone is too long")
	}
	if p.ScrapeStartTime != nil {
		if err := validateClock("scrape start time", *p.ScrapeStartTime); err != nil {
			return err
		}
	}
	if p.ScrapeEndTime != nil {
		if err := validateClock("scrape end time", *p.ScrapeEndTime); err != nil {
			return err
		}
	}
	if p.ScrapeIntervalMinutes != nil {
		return validateInterval(*p.ScrapeIntervalMinutes)
	}
	return nil
}

// Apply overlays the present fields onto pool. Everything else, including
// the server-computed stats, is kept as it was.
func (p PoolPatch) Apply(pool Pool) Pool {
	if p.Name != nil {
		pool.Name = *p.Name
	}
	if p.URL != nil {
		pool.URL = *p.URL
	}
	if p.ElementID != nil {
		pool.ElementID = *p.ElementID
	}
	if p.Timezone != nil {
		pool.Timezone = *p.Timezone
	}
	if p.ScrapeStartTime != nil {
		pool.ScrapeStartTime = *p.ScrapeStartTime
	}
	if p.ScrapeEndTime != nil {
		pool.ScrapeEndTime = *p.ScrapeEndTime
	}
	if p.ScrapeIntervalMinutes != nil {
		pool.ScrapeIntervalMinutes = *p.ScrapeIntervalMinutes
	}
	if p.IsActive != nil {
		pool.IsActive = *p.IsActive
	}
	return pool
}

type LatestVisitor struct {
	PoolID       int            `json:"pool_id"`
	PoolName     string         `json:"pool_name"`
	VisitorCount int            `json:"visitor_count"`
	Timestamp    timestamp.Time `json:"timestamp"`
	Weekday      string         `json:"weekday"`
}

// CurrentReading is the newest observation for one pool. VisitorCount is nil
// when the pool has never been scraped.
type CurrentReading struct {
	PoolID       int            `json:"pool_id"`
	PoolName     string         `json:"pool_name"`
	VisitorCount *int           `json:"visitor_count"`
	Timestamp    timestamp.Time `json:"timestamp"`
	Weekday      string         `json:"weekday"`
	Message      string         `json:"message"`
}

// ScrapeAck acknowledges a queued collection run. It says nothing about
// whether the run succeeded.
type ScrapeAck struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
	PoolID  int    `json:"pool_id"`
}

type ScrapeOutcome struct {
	Pool Pool
	Ack  ScrapeAck
	Err  error
}

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return invalid("name is required")
	}
	if n > maxNameLength {
		return invalid("name is too long")
	}
	return nil
}

func validateElementID(elementID string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(elementID))
	if n == 0 {
		return invalid("element id is required")
	}
	if n > maxElementIDLength {
		return invalid("element id is too long")
	}
	return nil
}

func validateClock(field, value string) error {
	if !clockTime.MatchString(value) {
		return invalid(fmt.Sprintf("%s must be HH:MM, got %q", field, value))
	}
	return nil
}

func validateInterval(minutes int) error {
	if minutes < MinScrapeInterval || minutes > MaxScrapeInterval {
		return invalid(fmt.Sprintf("scrape interval must be between %d and %d minutes", MinScrapeInterval, MaxScrapeInterval))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, msg)
}
