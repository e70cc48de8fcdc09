package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GallantsTeam/greenhack-sub002/internal/app"
	"github.com/GallantsTeam/greenhack-sub002/internal/cache"
	"github.com/GallantsTeam/greenhack-sub002/internal/clock"
	"github.com/GallantsTeam/greenhack-sub002/internal/config"
	"github.com/GallantsTeam/greenhack-sub002/internal/notify"
	"github.com/GallantsTeam/greenhack-sub002/internal/rng"
	"github.com/GallantsTeam/greenhack-sub002/internal/storage/postgres"
	transporthttp "github.com/GallantsTeam/greenhack-sub002/internal/transport/http"
	"github.com/GallantsTeam/greenhack-sub002/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	catalogRepo := postgres.NewCatalogRepository(pool)
	drawRepo := postgres.NewDrawRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	promoRepo := postgres.NewPromoRepository(pool)

	var catalog app.CatalogReader = catalogRepo
	var invalidator app.CaseInvalidator
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("parse redis url", zap.Error(err))
		}
		client := redis.NewClient(opts)
		if err := client.Ping(startupCtx).Err(); err != nil {
			logger.Fatal("redis ping", zap.Error(err))
		}
		defer func() { _ = client.Close() }()

		cached := app.NewCachedCatalog(catalogRepo, cache.NewRedis[app.CaseBundle](client, "catalog"), logger)
		catalog = cached
		invalidator = cached
		logger.Info("catalog cache enabled", zap.String("backend", "redis"))
	}

	notifier := buildNotifier(cfg, logger)
	if closer, ok := notifier.(interface{ Close() }); ok {
		defer closer.Close()
	}

	sysClock := clock.NewSystem()
	drawSvc := app.NewDrawService(drawRepo, catalog, ledgerRepo, sysClock, rng.NewCrypto(), logger)
	activationSvc := app.NewActivationService(inventoryRepo, sysClock, notifier, logger)
	promoSvc := app.NewPromoService(promoRepo, ledgerRepo, sysClock, logger)
	catalogSvc := app.NewCatalogService(catalogRepo, sysClock, invalidator)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/cases/", transporthttp.HandleDrawCase(drawSvc))
	mux.Handle("/draws/", transporthttp.HandleDrawDisposition(drawSvc))
	mux.Handle("/inventory", transporthttp.HandleListInventory(activationSvc))
	mux.Handle("/inventory/", transporthttp.HandleInventoryActions(activationSvc))
	mux.Handle("/promo/redeem", transporthttp.HandleRedeemPromo(promoSvc))
	mux.Handle("/balance", transporthttp.HandleBalance(drawSvc))
	mux.Handle("/ledger", transporthttp.HandleLedger(drawSvc))
	mux.Handle("/admin/cases", transporthttp.HandleAdminCases(catalogSvc))
	mux.Handle("/admin/cases/", transporthttp.HandleAdminPrizes(catalogSvc))
	mux.Handle("/admin/inventory/", transporthttp.HandleAdminInventory(activationSvc))
	mux.Handle("/admin/boosts", transporthttp.HandleAdminBoosts(catalogSvc))
	mux.Handle("/admin/boosts/", transporthttp.HandleAdminBoosts(catalogSvc))
	mux.Handle("/admin/promo-codes", transporthttp.HandleAdminPromoCodes(catalogSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func buildNotifier(cfg config.Config, logger *zap.Logger) notify.Notifier {
	if !cfg.NotificationsEnabled {
		return notify.NewNoop()
	}
	if cfg.AMQPURL != "" {
		n, err := notify.NewRabbitMQNotifier(notify.RabbitMQConfig{
			URL:      cfg.AMQPURL,
			Exchange: cfg.NotificationExchange,
		})
		if err != nil {
			logger.Warn("amqp notifier unavailable, falling back to log notifier", zap.Error(err))
			return notify.NewLogNotifier(logger)
		}
		logger.Info("notifications via amqp", zap.String("exchange", cfg.NotificationExchange))
		return n
	}
	return notify.NewLogNotifier(logger)
}
