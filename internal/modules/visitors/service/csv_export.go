package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"poolwatch/internal/modules/visitors/domain"
)

var csvHeader = []string{"id", "pool_id", "timestamp", "weekday", "visitor_count", "week_number", "created_at"}

// CSVWriter renders records one row at a time. Call Flush when done.
type CSVWriter struct {
	w      *csv.Writer
	header bool
	rows   int
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

func (c *CSVWriter) Write(record domain.Record) error {
	if !c.header {
		if err := c.w.Write(csvHeader); err != nil {
			return err
		}
		c.header = true
	}
	week := ""
	if record.WeekNumber != nil {
		week = strconv.Itoa(*record.WeekNumber)
	}
	err := c.w.Write([]string{
		strconv.Itoa(record.ID),
		strconv.Itoa(record.PoolID),
		formatTime(record.Timestamp.Time),
		record.Weekday,
		strconv.Itoa(record.VisitorCount),
		week,
		formatTime(record.CreatedAt.Time),
	})
	if err != nil {
		return err
	}
	c.rows++
	return nil
}

// Flush writes the header even when no record was written.
func (c *CSVWriter) Flush() (int, error) {
	if !c.header {
		if err := c.w.Write(csvHeader); err != nil {
			return 0, err
		}
		c.header = true
	}
	c.w.Flush()
	return c.rows, c.w.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
