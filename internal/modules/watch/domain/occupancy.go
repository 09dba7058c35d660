package domain

import (
	"fmt"
	"strings"
	"time"
)

// Occupancy is the retained message published for each pool.
type Occupancy struct {
	PoolID       int       `json:"pool_id"`
	PoolName     string    `json:"pool_name"`
	VisitorCount int       `json:"visitor_count"`
	Level        string    `json:"level"`
	Color        string    `json:"color"`
	Timestamp    time.Time `json:"timestamp"`
}

// Topic is "<prefix>/pools/<id>/occupancy"; surrounding slashes on prefix
// are ignored.
func Topic(prefix string, poolID int) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("pools/%d/occupancy", poolID)
	}
	return fmt.Sprintf("%s/pools/%d/occupancy", prefix, poolID)
}

// SameReading reports whether two messages describe the same scrape.
func (o Occupancy) SameReading(other Occupancy) bool {
	return o.PoolID == other.PoolID &&
		o.VisitorCount == other.VisitorCount &&
		o.Timestamp.Equal(other.Timestamp) &&
		o.PoolName == other.PoolName
}
