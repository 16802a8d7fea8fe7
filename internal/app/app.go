package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/VladPetriv/currency_beacon/config"
	currencybeacon "github.com/VladPetriv/currency_beacon/internal/api/currency_beacon"
	"github.com/VladPetriv/currency_beacon/internal/api/server"
	"github.com/VladPetriv/currency_beacon/internal/metrics"
	"github.com/VladPetriv/currency_beacon/internal/migrations"
	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/internal/service"
	"github.com/VladPetriv/currency_beacon/internal/store"
	"github.com/VladPetriv/currency_beacon/pkg/database"
	"github.com/VladPetriv/currency_beacon/pkg/logger"
	"github.com/VladPetriv/currency_beacon/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Run is used to start the application.
func Run(cfg *config.Config, logger *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("run application")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logger.Logger) error {
	postgres, err := database.NewPostgreSQL(database.PostgreSQLOptions{
		User:     cfg.PostgreSQL.User,
		Password: cfg.PostgreSQL.Password,
		Database: cfg.PostgreSQL.Database,
		Host:     cfg.PostgreSQL.Host,
		Port:     cfg.PostgreSQL.Port,
		SSLMode:  cfg.PostgreSQL.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("create postgres connection: %w", err)
	}
	defer func() {
		err := postgres.Close()
		if err != nil {
			logger.Error().Err(err).Msg("close postgres connection")
		}
	}()

	err = postgres.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	err = migrations.MigrateDB(logger, postgres.DB, cfg.PostgreSQL.Database, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	stores := service.Stores{
		Option: store.NewOption(postgres),
	}

	currencyBeaconAPI := currencybeacon.New(currencybeacon.Options{
		APIURL:  cfg.CurrencyBeacon.APIURL,
		APIKey:  cfg.CurrencyBeacon.APIKey,
		Timeout: cfg.CurrencyBeacon.Timeout,
	})
	defer currencyBeaconAPI.Close()

	apis := service.APIs{
		CurrencyExchanger: currencyBeaconAPI,
	}

	// Persisting jobs outlive requests which dispatched them.
	persistPool := worker.NewPool(
		worker.Options{
			WorkersCount: cfg.CurrencyBeacon.PersistWorkers,
			QueueSize:    cfg.CurrencyBeacon.PersistQueueSize,
			Logger:       logger,
		},
		service.NewSaveOptionHandler(service.SaveOptionHandlerOptions{
			Logger:  logger,
			Store:   stores.Option,
			Metrics: appMetrics,
			Timeout: cfg.CurrencyBeacon.PersistTimeout,
		}),
	)
	persistPool.Start(context.Background())
	defer persistPool.Stop()

	snapshot, err := service.LoadSnapshot(ctx, logger, stores.Option)
	if err != nil {
		logger.Warn().Err(err).Msg("load rates snapshot, starting with empty cache")
	}

	provider := service.NewCurrencyBeacon(service.CurrencyBeaconOptions{
		Logger:        logger,
		APIs:          apis,
		SnapshotStore: service.NewSnapshotDispatcher(logger, persistPool),
		Metrics:       appMetrics,
		Snapshot:      snapshot,
		RatesTTL:      cfg.CurrencyBeacon.RatesTTL,
		SingleFlight:  cfg.CurrencyBeacon.SingleFlight,
	})

	srv, err := server.New(server.Options{
		Logger:     logger,
		Provider:   provider,
		Currencies: apis.CurrencyExchanger,
		Database:   postgres,
		Metrics:    appMetrics,
		Gatherer:   registry,
		RatesTTL:   cfg.CurrencyBeacon.RatesTTL,
	})
	if err != nil {
		return fmt.Errorf("create http server: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe(cfg.HTTPServer.Address)
	}()

	logger.Info().
		Str("provider", provider.Name()).
		Bool("warmCache", snapshot != nil).
		Str("optionKey", models.CurrencyBeaconOptionKey).
		Msg("application started")

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	err = srv.Shutdown()
	if err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
