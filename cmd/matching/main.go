package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/stockmarket/internal/app/engine"
	"github.com/muhammadchandra19/stockmarket/internal/infrastructure/postgresql/migrations"
	"github.com/muhammadchandra19/stockmarket/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/instrument"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/market"
	orderreader "github.com/muhammadchandra19/stockmarket/internal/usecase/order-reader"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/orderbook"
	pricepublisher "github.com/muhammadchandra19/stockmarket/internal/usecase/price-publisher"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/snapshot"
	"github.com/muhammadchandra19/stockmarket/internal/usecase/trader"
	"github.com/muhammadchandra19/stockmarket/pkg/config"
	"github.com/muhammadchandra19/stockmarket/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/stockmarket/pkg/logger"
	"github.com/muhammadchandra19/stockmarket/pkg/migration"
	"github.com/muhammadchandra19/stockmarket/pkg/postgresql"
	"github.com/muhammadchandra19/stockmarket/pkg/redis"
	"github.com/shopspring/decimal"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_redis"})
		return
	}
	defer rclient.Disconnect(context.Background())

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "connect_postgres"})
		return
	}
	defer pgClient.Close()

	if err := migration.NewRunner(pgClient, migrations.FS, migration.Config{}, log).MigrateUp(ctx, 0); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "migrate_postgres"})
		return
	}

	registry, err := listInstruments()
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "list_instruments"})
		return
	}

	traderCash, err := decimal.NewFromString(cfg.EngineConfig.TraderCash)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "parse_trader_cash"})
		return
	}

	kafkaPublisher := pricepublisher.NewKafkaPublisher(cfg.MatchPublisherConfig, log)
	defer kafkaPublisher.Close()

	redisPublisher := pricepublisher.NewRedisPublisher(rclient, cfg.Redis.Key("prices"), cfg.MatchPublisherConfig.Channel, log)
	historyPublisher := pricepublisher.NewHistoryPublisher(price.NewRepository(pgClient, log))
	publisher := pricepublisher.NewFanout(kafkaPublisher, redisPublisher, historyPublisher)

	book := orderbook.NewBook(log)
	stockMarket := market.NewMarket(registry, book, publisher, log)
	directory := trader.NewDirectory(registry, book, traderCash, log)

	engine, err := app.NewEngineWithOptions(
		stockMarket,
		directory,
		orderreader.NewReader(cfg.KafkaConfig, log),
		snapshot.NewSnapshotStore(rclient, cfg.Redis.Key("snapshot:"+cfg.EngineConfig.Name), log),
		log,
		app.OptionsFromConfig(cfg.EngineConfig),
	)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_engine"})
		return
	}

	// Without a snapshot the listing prices are superseded by the last
	// published clearing prices
	if engine.GetLastSnapshotOffset() < 0 {
		restored, err := stockMarket.RestorePrices(ctx, redisPublisher, historyPublisher)
		if err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "restore_prices"})
		}
		log.Info("Instrument prices restored from price history", logger.Field{Key: "restored", Value: restored})
	}

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "start_engine"})
		return
	}

	health := healthcheck.New(2*time.Second, map[string]healthcheck.Checker{
		"redis":    rclient.Ping,
		"postgres": pgClient.Ping,
	})
	healthServer := &http.Server{
		Addr:              cfg.HealthAddr,
		Handler:           health.Handler(http.NotFoundHandler()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{Key: "action", Value: "serve_health"})
		}
	}()

	log.Info("Matching service started successfully", logger.Field{
		Key:   "instruments",
		Value: len(registry.Instruments()),
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_health"})
	}

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_engine"})
	}

	log.Info("Matching service shutdown complete")
}

// listInstruments builds the registry from the INSTRUMENTS seed list.
func listInstruments() (*instrument.Registry, error) {
	instruments, err := cfg.ParseInstruments()
	if err != nil {
		return nil, err
	}

	registry := instrument.NewRegistry()
	for _, seed := range instruments {
		if err := registry.List(seed.Symbol, seed.Price); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
