package service

import (
	"sort"

	poolsdto "poolwatch/internal/modules/pools/dto"
	"poolwatch/internal/modules/watch/domain"
	"poolwatch/internal/platform/crowd"
)

// Messages builds one occupancy message per pool with a latest reading,
// ordered by pool id. The registry's pool name wins over the one embedded in
// the reading, so renames show up without waiting for a new scrape.
func Messages(reg poolsdto.RegistryOutput, ceiling float64) []domain.Occupancy {
	names := make(map[int]string, len(reg.Pools))
	for _, p := range reg.Pools {
		names[p.ID] = p.Name
	}
	out := make([]domain.Occupancy, 0, len(reg.LatestVisitors))
	for _, l := range reg.LatestVisitors {
		name := l.PoolName
		if n, ok := names[l.PoolID]; ok {
			name = n
		}
		level := crowd.LevelFromCount(float64(l.VisitorCount), ceiling)
		out = append(out, domain.Occupancy{
			PoolID:       l.PoolID,
			PoolName:     name,
			VisitorCount: l.VisitorCount,
			Level:        string(level),
			Color:        string(level.Color()),
			Timestamp:    l.Timestamp,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PoolID < out[j].PoolID })
	return out
}

// Changes remembers the last message delivered per pool and filters out
// repeats.
type Changes struct {
	sent map[int]domain.Occupancy
}

func NewChanges() *Changes {
	return &Changes{sent: map[int]domain.Occupancy{}}
}

func (c *Changes) Pending(msgs []domain.Occupancy) []domain.Occupancy {
	out := make([]domain.Occupancy, 0, len(msgs))
	for _, m := range msgs {
		if prev, ok := c.sent[m.PoolID]; ok && prev.SameReading(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *Changes) MarkSent(m domain.Occupancy) {
	c.sent[m.PoolID] = m
}
