package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Publish each pool's occupancy to MQTT until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			watcher, err := s.app.Watcher(dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			stats, err := watcher.Run(cmd.Context())
			if err != nil {
				return err
			}
			return s.out.print(stats, func(tw *tabwriter.Writer) {
				row(tw, "PUBLISHED", "FAILED", "LAST PUBLISH")
				row(tw, stats.Published, stats.Failed, stats.LastPublish)
			})
		},
	}
	watch.Flags().BoolVar(&dryRun, "dry-run", false, "print messages instead of publishing")
	return watch
}
