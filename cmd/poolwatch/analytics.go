package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	analyticsdto "poolwatch/internal/modules/analytics/dto"
)

// poolCommand builds an analytics subcommand that takes one pool id.
func poolCommand(opts *rootOptions, use, short string, run func(cmd *cobra.Command, s *session, poolID int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <pool-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			return run(cmd, s, id)
		},
	}
}

func newAnalyticsCmd(opts *rootOptions) *cobra.Command {
	analytics := &cobra.Command{Use: "analytics", Short: "Occupancy statistics per pool"}

	analytics.AddCommand(poolCommand(opts, "weekday-averages", "Average visitors by weekday and hour",
		func(cmd *cobra.Command, s *session, id int) error {
			out, err := s.app.AnalyticsCLI.WeekdayAverages(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "WEEKDAY", "HOUR", "AVERAGE", "SAMPLES")
				for _, a := range out {
					row(tw, a.Weekday, a.Hour, a.AverageVisitors, a.SampleCount)
				}
			})
		}))

	analytics.AddCommand(poolCommand(opts, "heatmap", "Weekday by hour grid of average visitors",
		func(cmd *cobra.Command, s *session, id int) error {
			out, err := s.app.AnalyticsCLI.Heatmap(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) { printHeatmap(tw, out) })
		}))

	var start, end string
	daily := poolCommand(opts, "daily", "Per-day minimum, maximum and average",
		func(cmd *cobra.Command, s *session, id int) error {
			var (
				window analyticsdto.DateRangeInput
				err    error
			)
			if window.Start, err = parseDate("start", start); err != nil {
				return err
			}
			if window.End, err = parseDate("end", end); err != nil {
				return err
			}
			out, err := s.app.AnalyticsCLI.DailySummary(cmd.Context(), id, window)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "DATE", "MIN", "MAX", "AVERAGE", "READINGS")
				for _, d := range out {
					row(tw, d.Date.Format(dateLayout), d.MinVisitors, d.MaxVisitors, d.AvgVisitors, d.TotalReadings)
				}
			})
		})
	daily.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	daily.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	analytics.AddCommand(daily)

	var period string
	trends := poolCommand(opts, "trends", "Weekly or monthly averages",
		func(cmd *cobra.Command, s *session, id int) error {
			out, err := s.app.AnalyticsCLI.Trends(cmd.Context(), id, period)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "PERIOD", "AVERAGE", "PEAK", "READINGS")
				for _, p := range out.Data {
					row(tw, p.Period, p.AverageVisitors, p.PeakVisitors, p.TotalReadings)
				}
			})
		})
	trends.Flags().StringVar(&period, "period", "weekly", "weekly|monthly")
	analytics.AddCommand(trends)

	var weekday string
	peak := poolCommand(opts, "peak-hours", "Busiest and quietest hours",
		func(cmd *cobra.Command, s *session, id int) error {
			out, err := s.app.AnalyticsCLI.PeakHours(cmd.Context(), id, weekday)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "HOUR", "AVERAGE", "MAX", "")
				for _, h := range out.ByHour {
					mark := ""
					switch {
					case out.PeakHour != nil && *out.PeakHour == h.Hour:
						mark = "peak"
					case out.QuietestHour != nil && *out.QuietestHour == h.Hour:
						mark = "quietest"
					}
					row(tw, fmt.Sprintf("%02d:00", h.Hour), h.Average, h.Max, mark)
				}
			})
		})
	peak.Flags().StringVar(&weekday, "weekday", "", "only this weekday")
	analytics.AddCommand(peak)

	analytics.AddCommand(poolCommand(opts, "now", "Typical visitors at this weekday and time",
		func(cmd *cobra.Command, s *session, id int) error {
			out, err := s.app.AnalyticsCLI.NowAverage(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "POOL", "WEEKDAY", "TIME", "AVERAGE", "MIN", "MAX", "SAMPLES")
				row(tw, out.PoolName, out.Weekday, out.CurrentTime, out.AverageVisitors, out.MinVisitors, out.MaxVisitors, out.SampleCount)
			})
		}))

	var raw bool
	report := poolCommand(opts, "report", "Today, peak hours, last week and trend in one page",
		func(cmd *cobra.Command, s *session, id int) error {
			out, err := s.app.AnalyticsCLI.Report(cmd.Context(), id)
			if err != nil {
				return err
			}
			if s.out.format != outputTable {
				return s.out.print(out, nil)
			}
			text := out.Rendered
			if raw || text == "" {
				text = out.Markdown
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		})
	report.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	analytics.AddCommand(report)
	return analytics
}

func printHeatmap(tw *tabwriter.Writer, h analyticsdto.HeatmapOutput) {
	header := []any{"WEEKDAY"}
	for _, hour := range h.Hours {
		header = append(header, strconv.Itoa(hour))
	}
	row(tw, header...)
	for _, r := range h.Rows {
		cells := []any{r.Weekday}
		for _, c := range r.Cells {
			if c == nil {
				cells = append(cells, nil)
				continue
			}
			cells = append(cells, strconv.FormatFloat(c.Value, 'f', 0, 64))
		}
		row(tw, cells...)
	}
}
