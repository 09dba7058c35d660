package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"poolwatch/internal/bootstrap"
	"poolwatch/internal/platform/config"
	"poolwatch/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	overrides config.Overrides
	output    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "poolwatch",
		Short:         "Swimming pool occupancy dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateOutput(opts.output)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.overrides.ConfigFile, "config", "", "config file (default <state-dir>/config.yaml)")
	flags.StringVar(&opts.overrides.APIURL, "api-url", "", "backend server URL")
	flags.StringVar(&opts.overrides.StateDir, "state-dir", "", "directory for credentials, database and logs")
	flags.StringVar(&opts.overrides.Storage, "storage", "", "credential storage: file|sqlite|memory|none")
	flags.StringVar(&opts.overrides.LogLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table|json|yaml")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newAuthCmd(opts))
	root.AddCommand(newPoolsCmd(opts))
	root.AddCommand(newVisitorsCmd(opts))
	root.AddCommand(newAnalyticsCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	return root
}

// session is one command's wiring. close releases the credential store,
// publishers and the log file.
type session struct {
	app   *bootstrap.App
	out   printer
	close func()
}

func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	return open(cmd, opts, false)
}

func open(cmd *cobra.Command, opts *rootOptions, logToFile bool) (*session, error) {
	cfg, err := config.Load(opts.overrides)
	if err != nil {
		return nil, err
	}
	logOpts := logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, Output: cmd.ErrOrStderr()}
	var (
		logger  hclog.Logger
		logFile io.Closer
	)
	if logToFile {
		logger, logFile, err = logging.NewFile(logOpts, cfg.LogPath())
		if err != nil {
			return nil, err
		}
	} else {
		logger = logging.New(logOpts)
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	return &session{
		app: app,
		out: printer{format: opts.output, w: cmd.OutOrStdout()},
		close: func() {
			if err := app.Close(); err != nil {
				logger.Warn("shutdown", "error", err)
			}
			if logFile != nil {
				_ = logFile.Close()
			}
		},
	}, nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, opts, true)
			if err != nil {
				return err
			}
			defer s.close()
			return bootstrap.RunTUI(s.app)
		},
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pool id %q", raw)
	}
	return id, nil
}
