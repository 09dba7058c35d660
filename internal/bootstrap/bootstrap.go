package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	analyticsinadapter "poolwatch/internal/modules/analytics/adapter/in"
	analyticsoutadapter "poolwatch/internal/modules/analytics/adapter/out"
	analyticsservice "poolwatch/internal/modules/analytics/service"
	analyticsusecase "poolwatch/internal/modules/analytics/usecase"
	authinadapter "poolwatch/internal/modules/auth/adapter/in"
	authoutadapter "poolwatch/internal/modules/auth/adapter/out"
	authout "poolwatch/internal/modules/auth/port/out"
	authservice "poolwatch/internal/modules/auth/service"
	authusecase "poolwatch/internal/modules/auth/usecase"
	poolsinadapter "poolwatch/internal/modules/pools/adapter/in"
	poolsoutadapter "poolwatch/internal/modules/pools/adapter/out"
	poolsin "poolwatch/internal/modules/pools/port/in"
	poolsservice "poolwatch/internal/modules/pools/service"
	poolsusecase "poolwatch/internal/modules/pools/usecase"
	visitorsinadapter "poolwatch/internal/modules/visitors/adapter/in"
	visitorsoutadapter "poolwatch/internal/modules/visitors/adapter/out"
	visitorsusecase "poolwatch/internal/modules/visitors/usecase"
	watchinadapter "poolwatch/internal/modules/watch/adapter/in"
	watchoutadapter "poolwatch/internal/modules/watch/adapter/out"
	watchdto "poolwatch/internal/modules/watch/dto"
	watchout "poolwatch/internal/modules/watch/port/out"
	watchusecase "poolwatch/internal/modules/watch/usecase"
	"poolwatch/internal/platform/apiclient"
	"poolwatch/internal/platform/clock"
	"poolwatch/internal/platform/config"
	uiapp "poolwatch/internal/ui/app"
)

const (
	reportWidth        = 100
	mqttConnectTimeout = 10 * time.Second
)

type App struct {
	Config       config.Config
	AuthCLI      authinadapter.CLIHandler
	PoolsCLI     poolsinadapter.CLIHandler
	VisitorsCLI  visitorsinadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler

	pools   poolsin.Usecase
	log     hclog.Logger
	closers []io.Closer
}

func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	app := &App{Config: cfg, log: logger}

	store, err := app.credentialStore(cfg)
	if err != nil {
		return nil, err
	}
	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  authoutadapter.StoredTokenSource(store),
		Logger:  logger.Named("http"),
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new api client: %w", err)
	}

	authUC := authusecase.NewInteractor(
		authoutadapter.NewHTTPAuthAPI(client),
		store,
		authservice.NewTokenInspector(clk),
		logger,
	)

	poolAPI := poolsoutadapter.NewHTTPPoolAPI(client)
	app.pools = poolsusecase.NewInteractor(
		poolAPI,
		poolsservice.NewBulkScraper(poolAPI, cfg.Scrape.Interval, logger),
		logger,
	)

	visitorsUC := visitorsusecase.NewInteractor(visitorsoutadapter.NewHTTPVisitorAPI(client), logger)

	analyticsAPI := analyticsoutadapter.NewHTTPAnalyticsAPI(client)
	renderer, err := analyticsoutadapter.NewGlamourRenderer("auto", reportWidth)
	if err != nil {
		logger.Warn("report styling unavailable, printing plain markdown", "error", err)
		renderer = nil
	}
	analyticsUC := analyticsusecase.NewInteractor(
		analyticsAPI,
		analyticsservice.NewOverviewFetcher(analyticsAPI, clk),
		renderer,
		cfg.Capacity,
		logger,
	)

	app.AuthCLI = authinadapter.NewCLIHandler(authUC)
	app.PoolsCLI = poolsinadapter.NewCLIHandler(app.pools)
	app.VisitorsCLI = visitorsinadapter.NewCLIHandler(visitorsUC)
	app.AnalyticsCLI = analyticsinadapter.NewCLIHandler(analyticsUC)
	return app, nil
}

// credentialStore returns nil for StorageNone. Without a store no token can be
// attached to requests, so login fails with ErrStorageUnavailable; use
// StorageMemory for a session that lives only as long as the process.
func (a *App) credentialStore(cfg config.Config) (authout.CredentialStore, error) {
	switch cfg.Storage {
	case config.StorageFile:
		return authoutadapter.NewFileCredentialStore(cfg.CredentialsPath()), nil
	case config.StorageSQLite:
		if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		store, err := authoutadapter.NewSQLiteCredentialStore(cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open credential db: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	case config.StorageMemory:
		return authoutadapter.NewMemoryCredentialStore(), nil
	case config.StorageNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

// Watcher builds the occupancy publisher. dryRun writes messages to out
// instead of connecting to the broker.
func (a *App) Watcher(dryRun bool, out io.Writer) (watchinadapter.CLIHandler, error) {
	var publisher watchout.Publisher
	if dryRun {
		publisher = watchoutadapter.NewStreamPublisher(out)
	} else {
		p, err := watchoutadapter.NewMQTTPublisher(watchoutadapter.MQTTOptions{
			Broker:         a.Config.MQTT.Broker,
			ClientID:       a.Config.MQTT.ClientID,
			QoS:            a.Config.MQTT.QoS,
			ConnectTimeout: mqttConnectTimeout,
		}, a.log)
		if err != nil {
			return watchinadapter.CLIHandler{}, err
		}
		publisher = p
	}
	a.closers = append(a.closers, publisherCloser{publisher})

	uc := watchusecase.NewInteractor(a.pools, publisher, watchdto.Options{
		Interval:    a.Config.Watch.Interval,
		TopicPrefix: a.Config.MQTT.TopicPrefix,
		Ceiling:     a.Config.Capacity,
	}, clock.SystemClock{}, a.log)
	return watchinadapter.NewCLIHandler(uc), nil
}

// Close releases the credential database and any publisher, in reverse
// order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type publisherCloser struct{ p watchout.Publisher }

func (c publisherCloser) Close() error {
	c.p.Close()
	return nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthCLI, app.PoolsCLI, app.AnalyticsCLI, app.Config.Capacity)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
