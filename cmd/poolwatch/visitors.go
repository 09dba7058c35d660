package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	visitorsdto "poolwatch/internal/modules/visitors/dto"
)

const dateLayout = "2006-01-02"

type filterFlags struct {
	pool           int
	start, end     string
	weekday        string
	limit, offset  int
	withPagination bool
}

func (ff *filterFlags) bind(f *pflag.FlagSet, paginated bool) {
	ff.withPagination = paginated
	f.IntVar(&ff.pool, "pool", 0, "only this pool")
	f.StringVar(&ff.start, "start", "", "first day, YYYY-MM-DD")
	f.StringVar(&ff.end, "end", "", "last day, YYYY-MM-DD")
	f.StringVar(&ff.weekday, "weekday", "", "only this weekday, e.g. monday or mon")
	if paginated {
		f.IntVar(&ff.limit, "limit", 0, "rows per request (default backend)")
		f.IntVar(&ff.offset, "offset", 0, "rows to skip")
	}
}

// input sets only the flags the user gave, so unset ones fall back to the
// backend defaults.
func (ff *filterFlags) input(f *pflag.FlagSet) (visitorsdto.FilterInput, error) {
	in := visitorsdto.FilterInput{Weekday: ff.weekday}
	if f.Changed("pool") {
		in.PoolID = &ff.pool
	}
	var err error
	if in.StartDate, err = parseDate("start", ff.start); err != nil {
		return in, err
	}
	if in.EndDate, err = parseDate("end", ff.end); err != nil {
		return in, err
	}
	if ff.withPagination {
		if f.Changed("limit") {
			in.Limit = &ff.limit
		}
		if f.Changed("offset") {
			in.Offset = &ff.offset
		}
	}
	return in, nil
}

func parseDate(flag, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", flag, raw)
	}
	return &t, nil
}

func printRecords(p printer, records []visitorsdto.RecordOutput) error {
	return p.print(records, func(tw *tabwriter.Writer) {
		row(tw, "ID", "POOL", "TIME", "WEEKDAY", "VISITORS")
		for _, r := range records {
			row(tw, r.ID, r.PoolID, r.Timestamp, r.Weekday, r.VisitorCount)
		}
	})
}

func newVisitorsCmd(opts *rootOptions) *cobra.Command {
	visitors := &cobra.Command{Use: "visitors", Short: "Visitor count history"}

	var listFilter filterFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List readings, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := listFilter.input(cmd.Flags())
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			records, err := s.app.VisitorsCLI.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printRecords(s.out, records)
		},
	}
	listFilter.bind(list.Flags(), true)

	var pageFilter filterFlags
	page := &cobra.Command{
		Use:   "page",
		Short: "Fetch one page of readings with the total count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := pageFilter.input(cmd.Flags())
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			out, err := s.app.VisitorsCLI.Page(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "ID", "POOL", "TIME", "WEEKDAY", "VISITORS")
				for _, r := range out.Records {
					row(tw, r.ID, r.PoolID, r.Timestamp, r.Weekday, r.VisitorCount)
				}
				_, _ = fmt.Fprintf(tw, "\nrows %d-%d of %d, more: %t\n", out.Offset+1, out.Offset+len(out.Records), out.Total, out.HasMore)
			})
		},
	}
	pageFilter.bind(page.Flags(), true)

	var allFilter filterFlags
	all := &cobra.Command{
		Use:   "all",
		Short: "Fetch every matching reading, page by page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := allFilter.input(cmd.Flags())
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			records, err := s.app.VisitorsCLI.All(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printRecords(s.out, records)
		},
	}
	allFilter.bind(all.Flags(), true)

	latest := &cobra.Command{
		Use:   "latest",
		Short: "Latest reading of every pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			out, err := s.app.VisitorsCLI.Latest(cmd.Context())
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "POOL", "NAME", "VISITORS", "TIME", "WEEKDAY")
				for _, l := range out {
					row(tw, l.PoolID, l.PoolName, l.VisitorCount, l.Timestamp, l.Weekday)
				}
			})
		},
	}

	today := &cobra.Command{
		Use:   "today <pool-id>",
		Short: "Today's readings for one pool",
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
			records, err := s.app.VisitorsCLI.Today(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRecords(s.out, records)
		},
	}

	var countPool int
	count := &cobra.Command{
		Use:   "count",
		Short: "Number of stored readings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var pool *int
			if cmd.Flags().Changed("pool") {
				pool = &countPool
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			out, err := s.app.VisitorsCLI.Count(cmd.Context(), pool)
			if err != nil {
				return err
			}
			return s.out.print(out, func(tw *tabwriter.Writer) {
				row(tw, "POOL", "COUNT")
				row(tw, out.PoolID, out.Count)
			})
		},
	}
	count.Flags().IntVar(&countPool, "pool", 0, "only this pool")

	var exportFilter filterFlags
	var exportFile string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write every matching reading as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := exportFilter.input(cmd.Flags())
			if err != nil {
				return err
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			var w io.Writer = cmd.OutOrStdout()
			if exportFile != "" && exportFile != "-" {
				f, err := os.Create(exportFile)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			n, err := s.app.VisitorsCLI.Export(cmd.Context(), filter, w)
			if err != nil {
				return err
			}
			if w != cmd.OutOrStdout() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d readings to %s\n", n, exportFile)
			}
			return nil
		},
	}
	exportFilter.bind(export.Flags(), false)
	export.Flags().StringVar(&exportFile, "file", "-", "destination file, - for stdout")

	visitors.AddCommand(list, page, all, latest, today, count, export)
	return visitors
}
