package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "poolwatch/internal/platform/errors"
	"poolwatch/internal/platform/timestamp"
)

type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// ParsePeriod defaults to Weekly, matching the backend.
func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	}
	return "", fmt.Errorf("%w: period must be 'weekly' or 'monthly'", apperrors.ErrInvalidInput)
}

type WeekdayAverage struct {
	Weekday         string  `json:"weekday"`
	Hour            int     `json:"hour"`
	AverageVisitors float64 `json:"average_visitors"`
	SampleCount     int     `json:"sample_count"`
}

type DailySummary struct {
	Date          timestamp.Time `json:"date"`
	PoolID        int            `json:"pool_id"`
	MinVisitors   int            `json:"min_visitors"`
	MaxVisitors   int            `json:"max_visitors"`
	AvgVisitors   float64        `json:"avg_visitors"`
	TotalReadings int            `json:"total_readings"`
}

// TrendPoint is one week ("2026-W09") or month ("2026-03").
type TrendPoint struct {
	Period          string  `json:"period"`
	AverageVisitors float64 `json:"average_visitors"`
	PeakVisitors    int     `json:"peak_visitors"`
	TotalReadings   int     `json:"total_readings"`
}

// Trend lists its points oldest first.
type Trend struct {
	PoolID     int          `json:"pool_id"`
	PoolName   string       `json:"pool_name"`
	PeriodType Period       `json:"period_type"`
	Data       []TrendPoint `json:"data"`
}

// NowAverage compares today's weekday from opening hour up to the current
// time of day in the pool's timezone.
type NowAverage struct {
	PoolID          int     `json:"pool_id"`
	PoolName        string  `json:"pool_name"`
	Weekday         string  `json:"weekday"`
	CurrentTime     string  `json:"current_time"`
	AverageVisitors float64 `json:"average_visitors"`
	MinVisitors     int     `json:"min_visitors"`
	MaxVisitors     int     `json:"max_visitors"`
	SampleCount     int     `json:"sample_count"`
}

type HourStat struct {
	Hour    int     `json:"hour"`
	Average float64 `json:"average"`
	Max     int     `json:"max"`
}

// PeakHours has nil hours when no readings exist.
type PeakHours struct {
	PeakHour     *int       `json:"peak_hour"`
	QuietestHour *int       `json:"quietest_hour"`
	ByHour       []HourStat `json:"by_hour"`
}

// Overview bundles the reads shown on a pool's report.
type Overview struct {
	PoolID      int
	GeneratedAt time.Time
	From        time.Time
	To          time.Time
	Now         NowAverage
	Peak        PeakHours
	Trend       Trend
	Daily       []DailySummary
}
