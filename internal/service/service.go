package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talx-hub/salon-bonus/internal/api/handlers"
	"github.com/talx-hub/salon-bonus/internal/config"
	"github.com/talx-hub/salon-bonus/internal/dbmanager"
	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/repo"
	"github.com/talx-hub/salon-bonus/internal/router"
	"github.com/talx-hub/salon-bonus/internal/service/account"
	"github.com/talx-hub/salon-bonus/internal/service/accrual"
	"github.com/talx-hub/salon-bonus/internal/service/catalog"
	"github.com/talx-hub/salon-bonus/internal/service/metrics"
	"github.com/talx-hub/salon-bonus/internal/service/notify"
	"github.com/talx-hub/salon-bonus/internal/service/redemption"
	"github.com/talx-hub/salon-bonus/internal/service/settlement"
	"github.com/talx-hub/salon-bonus/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func initService(log *slog.Logger) (*http.Server, *dbmanager.DBManager) {
	cfg := config.NewBuilder(log).
		FromDotEnv().
		FromEnv().
		FromFlags().
		GetConfig()
	log = logger.New(logger.ParseLevel(cfg.LogLevel))

	const connectTO = 2 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), connectTO)
	defer cancel()
	dbManager := dbmanager.New(cfg.DatabaseURI, log).
		Connect(ctx).
		ApplyMigrations(ctx).
		Ping(ctx)
	if err := dbManager.Error(); err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError,
			"failed to start service: db connection error",
			slog.Any(model.KeyLoggerError, err),
		)
		return nil, nil
	}

	pool, err := dbManager.GetPool(ctx)
	if err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError,
			"failed to start service: failed to get DB pool",
			slog.Any(model.KeyLoggerError, err),
		)
		dbManager.Close()
		return nil, nil
	}

	store := repo.NewStore(pool, cfg.LockTimeout, log)
	m := metrics.New()
	notifier := notify.NewLogNotifier(log)
	rates := loyalty.Rates{
		PointsPerDollar:   cfg.PointsPerDollar,
		MinPointsPerVisit: cfg.MinPointsPerVisit,
	}

	programs := catalog.New(store, notifier, cfg.Location(), log)
	redeemer := redemption.New(store, cfg.DiscountPerPoint, m, log)
	accruer := accrual.New(store, programs, rates, m, log)
	settler := settlement.New(store, programs, redeemer, notifier, settlement.Config{
		Location:       cfg.Location(),
		TaxRate:        cfg.TaxRate,
		PointValue:     cfg.DiscountPerPoint,
		Rates:          rates,
		AcquireTimeout: cfg.SettlementAcquireTimeout,
		MaxConcurrent:  cfg.MaxConcurrentSettlements,
	}, m, log)
	accounts := account.New(store, programs, log)

	rr := router.New(cfg, log)
	rr.SetRouter(&struct {
		*handlers.LoyaltyHandler
		*handlers.CheckoutHandler
		*handlers.OwnerHandler
		*handlers.HealthHandler
	}{
		LoyaltyHandler:  handlers.NewLoyaltyHandler(accruer, redeemer, accounts, log),
		CheckoutHandler: handlers.NewCheckoutHandler(settler, log),
		OwnerHandler:    handlers.NewOwnerHandler(programs, accounts, log),
		HealthHandler:   handlers.NewHealthHandler(pool, log),
	}, m.Handler())

	return &http.Server{
		Addr:              cfg.RunAddr,
		Handler:           rr.GetRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}, dbManager
}

func RunServer() {
	log := slog.Default()
	srv, dbManager := initService(log)
	if srv == nil {
		log.LogAttrs(context.TODO(),
			slog.LevelError,
			"failed to init service",
		)
		return
	}
	defer dbManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.LogAttrs(context.TODO(),
				slog.LevelError,
				"listen and serve error",
				slog.Any(model.KeyLoggerError, err),
			)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.LogAttrs(context.TODO(),
				slog.LevelError,
				"graceful shutdown failed",
				slog.Any(model.KeyLoggerError, err),
			)
		}
	}
}
