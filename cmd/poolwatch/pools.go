package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	poolsdto "poolwatch/internal/modules/pools/dto"
)

func newPoolsCmd(opts *rootOptions) *cobra.Command {
	pools := &cobra.Command{Use: "pools", Short: "Pool registry commands"}

	pools.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pools with their latest reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			list, err := s.app.PoolsCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			return s.out.print(list, func(tw *tabwriter.Writer) {
				row(tw, "ID", "NAME", "ACTIVE", "VISITORS", "LAST READING", "RECORDS")
				for _, p := range list {
					row(tw, p.ID, p.Name, p.IsActive, p.LatestVisitorCount, p.LatestReadingTime, p.TotalRecords)
				}
			})
		},
	})

	pools.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one pool",
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
			p, err := s.app.PoolsCLI.Show(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.out.print(p, func(tw *tabwriter.Writer) { printPoolDetail(tw, p) })
		},
	})

	pools.AddCommand(&cobra.Command{
		Use:   "current <id>",
		Short: "Show a pool's current visitor count",
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
			r, err := s.app.PoolsCLI.Current(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.out.print(r, func(tw *tabwriter.Writer) {
				row(tw, "POOL", "VISITORS", "AT", "WEEKDAY", "MESSAGE")
				row(tw, r.PoolName, r.VisitorCount, r.Timestamp, r.Weekday, r.Message)
			})
		},
	})

	pools.AddCommand(newPoolCreateCmd(opts), newPoolUpdateCmd(opts))

	pools.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pool and its readings",
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
			if err := s.app.PoolsCLI.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted pool %d\n", id)
			return nil
		},
	})

	var all bool
	scrape := &cobra.Command{
		Use:   "scrape [<id>|--all]",
		Short: "Queue an immediate scrape",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give either a pool id or --all")
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			var results []poolsdto.ScrapeOutput
			if all {
				results, err = s.app.PoolsCLI.ScrapeAll(cmd.Context())
			} else {
				var id int
				if id, err = parseID(args[0]); err != nil {
					return err
				}
				var out poolsdto.ScrapeOutput
				out, err = s.app.PoolsCLI.Scrape(cmd.Context(), id)
				results = []poolsdto.ScrapeOutput{out}
			}
			if err != nil {
				return err
			}
			return s.out.print(results, func(tw *tabwriter.Writer) {
				row(tw, "POOL", "NAME", "TASK", "RESULT")
				for _, r := range results {
					result := r.Message
					if r.Error != "" {
						result = "error: " + r.Error
					}
					row(tw, r.PoolID, r.PoolName, r.TaskID, result)
				}
			})
		},
	}
	scrape.Flags().BoolVar(&all, "all", false, "scrape every pool, one request at a time")
	pools.AddCommand(scrape)
	return pools
}

func newPoolCreateCmd(opts *rootOptions) *cobra.Command {
	var input poolsdto.CreatePoolInput
	var inactive bool
	create := &cobra.Command{
		Use:   "create --name <name> --url <url> --element-id <id>",
		Short: "Register a new pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inactive {
				active := false
				input.IsActive = &active
			}
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			p, err := s.app.PoolsCLI.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			return s.out.print(p, func(tw *tabwriter.Writer) { printPoolDetail(tw, p) })
		},
	}
	f := create.Flags()
	f.StringVar(&input.Name, "name", "", "display name")
	f.StringVar(&input.URL, "url", "", "page that shows the visitor count")
	f.StringVar(&input.ElementID, "element-id", "", "id of the element holding the count")
	f.StringVar(&input.Timezone, "timezone", "", "IANA timezone of the schedule (default backend)")
	f.StringVar(&input.ScrapeStartTime, "start", "", "daily scrape start, HH:MM")
	f.StringVar(&input.ScrapeEndTime, "end", "", "daily scrape end, HH:MM")
	f.IntVar(&input.ScrapeIntervalMinutes, "interval", 0, "minutes between scrapes")
	f.BoolVar(&inactive, "inactive", false, "create the pool paused")
	return create
}

func newPoolUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		name, url, elementID, timezone, start, end string
		interval                                   int
		active                                     bool
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			input := poolsdto.UpdatePoolInput{}
			setString := func(flag string, v string, dst **string) {
				if f.Changed(flag) {
					*dst = &v
				}
			}
			setString("name", name, &input.Name)
			setString("url", url, &input.URL)
			setString("element-id", elementID, &input.ElementID)
			setString("timezone", timezone, &input.Timezone)
			setString("start", start, &input.ScrapeStartTime)
			setString("end", end, &input.ScrapeEndTime)
			if f.Changed("interval") {
				input.ScrapeIntervalMinutes = &interval
			}
			if f.Changed("active") {
				input.IsActive = &active
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			p, err := s.app.PoolsCLI.Update(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			return s.out.print(p, func(tw *tabwriter.Writer) { printPoolDetail(tw, p) })
		},
	}
	f := update.Flags()
	f.StringVar(&name, "name", "", "display name")
	f.StringVar(&url, "url", "", "page that shows the visitor count")
	f.StringVar(&elementID, "element-id", "", "id of the element holding the count")
	f.StringVar(&timezone, "timezone", "", "IANA timezone of the schedule")
	f.StringVar(&start, "start", "", "daily scrape start, HH:MM")
	f.StringVar(&end, "end", "", "daily scrape end, HH:MM")
	f.IntVar(&interval, "interval", 0, "minutes between scrapes")
	f.BoolVar(&active, "active", true, "whether the pool is scraped")
	return update
}

func printPoolDetail(tw *tabwriter.Writer, p poolsdto.PoolOutput) {
	row(tw, "id", p.ID)
	row(tw, "name", p.Name)
	row(tw, "url", p.URL)
	row(tw, "element", p.ElementID)
	row(tw, "schedule", fmt.Sprintf("%s-%s every %d min (%s)", p.ScrapeStartTime, p.ScrapeEndTime, p.ScrapeIntervalMinutes, p.Timezone))
	row(tw, "active", p.IsActive)
	row(tw, "created", p.CreatedAt)
	row(tw, "visitors", p.LatestVisitorCount)
	row(tw, "last reading", p.LatestReadingTime)
	row(tw, "records", p.TotalRecords)
}
