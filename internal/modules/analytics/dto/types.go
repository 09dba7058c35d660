package dto

import "time"

type DateRangeInput struct {
	Start *time.Time
	End   *time.Time
}

type WeekdayAverageOutput struct {
	Weekday         string  `json:"weekday" yaml:"weekday"`
	Hour            int     `json:"hour" yaml:"hour"`
	AverageVisitors float64 `json:"average_visitors" yaml:"average_visitors"`
	SampleCount     int     `json:"sample_count" yaml:"sample_count"`
}

type HeatmapCellOutput struct {
	Weekday    string  `json:"weekday" yaml:"weekday"`
	Hour       int     `json:"hour" yaml:"hour"`
	Value      float64 `json:"value" yaml:"value"`
	Normalized float64 `json:"normalized" yaml:"normalized"`
	Level      string  `json:"level" yaml:"level"`
	Color      string  `json:"color" yaml:"color"`
}

// HeatmapRowOutput holds one weekday, with a nil entry for each hour in
// HeatmapOutput.Hours that has no reading.
type HeatmapRowOutput struct {
	Weekday string               `json:"weekday" yaml:"weekday"`
	Cells   []*HeatmapCellOutput `json:"cells" yaml:"cells"`
}

type HeatmapOutput struct {
	PoolID   int                 `json:"pool_id" yaml:"pool_id"`
	PoolName string              `json:"pool_name" yaml:"pool_name"`
	MinValue float64             `json:"min_value" yaml:"min_value"`
	MaxValue float64             `json:"max_value" yaml:"max_value"`
	Cells    []HeatmapCellOutput `json:"data" yaml:"data"`
	Hours    []int               `json:"hours" yaml:"hours"`
	Rows     []HeatmapRowOutput  `json:"rows" yaml:"rows"`
}

type DailySummaryOutput struct {
	Date          time.Time `json:"date" yaml:"date"`
	PoolID        int       `json:"pool_id" yaml:"pool_id"`
	MinVisitors   int       `json:"min_visitors" yaml:"min_visitors"`
	MaxVisitors   int       `json:"max_visitors" yaml:"max_visitors"`
	AvgVisitors   float64   `json:"avg_visitors" yaml:"avg_visitors"`
	TotalReadings int       `json:"total_readings" yaml:"total_readings"`
}

type TrendPointOutput struct {
	Period          string  `json:"period" yaml:"period"`
	AverageVisitors float64 `json:"average_visitors" yaml:"average_visitors"`
	PeakVisitors    int     `json:"peak_visitors" yaml:"peak_visitors"`
	TotalReadings   int     `json:"total_readings" yaml:"total_readings"`
}

type TrendOutput struct {
	PoolID     int                `json:"pool_id" yaml:"pool_id"`
	PoolName   string             `json:"pool_name" yaml:"pool_name"`
	PeriodType string             `json:"period_type" yaml:"period_type"`
	Data       []TrendPointOutput `json:"data" yaml:"data"`
}

type NowAverageOutput struct {
	PoolID          int     `json:"pool_id" yaml:"pool_id"`
	PoolName        string  `json:"pool_name" yaml:"pool_name"`
	Weekday         string  `json:"weekday" yaml:"weekday"`
	CurrentTime     string  `json:"current_time" yaml:"current_time"`
	AverageVisitors float64 `json:"average_visitors" yaml:"average_visitors"`
	MinVisitors     int     `json:"min_visitors" yaml:"min_visitors"`
	MaxVisitors     int     `json:"max_visitors" yaml:"max_visitors"`
	SampleCount     int     `json:"sample_count" yaml:"sample_count"`
}

type HourStatOutput struct {
	Hour    int     `json:"hour" yaml:"hour"`
	Average float64 `json:"average" yaml:"average"`
	Max     int     `json:"max" yaml:"max"`
}

type PeakHoursOutput struct {
	PeakHour     *int             `json:"peak_hour" yaml:"peak_hour"`
	QuietestHour *int             `json:"quietest_hour" yaml:"quietest_hour"`
	ByHour       []HourStatOutput `json:"by_hour" yaml:"by_hour"`
}

// ReportOutput carries the report both as markdown source and as rendered
// terminal text; Rendered equals Markdown when no renderer is configured.
type ReportOutput struct {
	PoolID   int    `json:"pool_id" yaml:"pool_id"`
	Markdown string `json:"markdown" yaml:"markdown"`
	Rendered string `json:"-" yaml:"-"`
}
