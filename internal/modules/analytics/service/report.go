package service

import (
	"fmt"
	"strings"

	"poolwatch/internal/modules/analytics/domain"
	"poolwatch/internal/platform/crowd"
)

// trendRows caps the trend table to the most recent periods.
const trendRows = 8

// BuildReport renders an overview as markdown. Crowd levels are relative to
// ceiling, the configured pool capacity.
func BuildReport(ov domain.Overview, ceiling float64) string {
	var b strings.Builder
	name := ov.Now.PoolName
	if name == "" {
		name = ov.Trend.PoolName
	}
	if name == "" {
		name = fmt.Sprintf("Pool %d", ov.PoolID)
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "_Generated %s_\n\n", ov.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## So far today\n\n")
	if ov.Now.SampleCount == 0 {
		fmt.Fprintf(&b, "No readings yet for %s up to %s.\n\n", ov.Now.Weekday, ov.Now.CurrentTime)
	} else {
		level := crowd.LevelFromCount(ov.Now.AverageVisitors, ceiling)
		fmt.Fprintf(&b, "A typical %s up to %s averages **%.1f** visitors (%s), ranging %d to %d over %d readings.\n\n",
			ov.Now.Weekday, ov.Now.CurrentTime, ov.Now.AverageVisitors, level, ov.Now.MinVisitors, ov.Now.MaxVisitors, ov.Now.SampleCount)
	}

	b.WriteString("## Peak hours\n\n")
	if ov.Peak.PeakHour == nil {
		b.WriteString("Not enough data.\n\n")
	} else {
		fmt.Fprintf(&b, "Busiest at **%02d:00**, quietest at **%02d:00**.\n\n", *ov.Peak.PeakHour, hourOr(ov.Peak.QuietestHour, *ov.Peak.PeakHour))
		b.WriteString("| Hour | Average | Max | Level |\n|---:|---:|---:|---|\n")
		for _, h := range ov.Peak.ByHour {
			fmt.Fprintf(&b, "| %02d:00 | %.1f | %d | %s |\n", h.Hour, h.Average, h.Max, crowd.LevelFromCount(h.Average, ceiling))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Last %d days\n\n", OverviewDays)
	if len(ov.Daily) == 0 {
		b.WriteString("No readings in this window.\n\n")
	} else {
		b.WriteString("| Date | Min | Avg | Max | Readings |\n|---|---:|---:|---:|---:|\n")
		for _, d := range ov.Daily {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %d | %d |\n", d.Date.Format("Mon 2006-01-02"), d.MinVisitors, d.AvgVisitors, d.MaxVisitors, d.TotalReadings)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s trend\n\n", titleCase(string(ov.Trend.PeriodType)))
	points := ov.Trend.Data
	if len(points) > trendRows {
		points = points[len(points)-trendRows:]
	}
	if len(points) == 0 {
		b.WriteString("No trend data.\n")
	} else {
		b.WriteString("| Period | Average | Peak | Readings |\n|---|---:|---:|---:|\n")
		for _, p := range points {
			fmt.Fprintf(&b, "| %s | %.1f | %d | %d |\n", p.Period, p.AverageVisitors, p.PeakVisitors, p.TotalReadings)
		}
	}
	return b.String()
}

func hourOr(h *int, fallback int) int {
	if h == nil {
		return fallback
	}
	return *h
}

func titleCase(s string) string {
	if s == "" {
		return "Weekly"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
