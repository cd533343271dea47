package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpadp "loan-ledger/internal/adapter/http"
	"loan-ledger/internal/adapter/repository/mysql"
	"loan-ledger/internal/adapter/repository/rediscache"
	"loan-ledger/internal/config"
	"loan-ledger/internal/infrastructure/cache"
	"loan-ledger/internal/infrastructure/db"
	"loan-ledger/internal/infrastructure/logging"
	"loan-ledger/internal/infrastructure/metrics"
	accountuc "loan-ledger/internal/usecase/account"
	"loan-ledger/internal/usecase/ledger"
	"loan-ledger/pkg/id"
)

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return db.OpenSQLite(cfg.SQLitePath)
	}
	return db.OpenGorm(cfg.MySQLDSN())
}

func main() {
	cfg := config.Load()
	logger := logging.Setup("loan-ledger", cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	gdb, err := openDB(cfg)
	if err != nil {
		logger.Error("open database", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}

	// Redis is optional: without it there is no idempotency and no view cache.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, continuing without idempotency and view cache", "err", err)
			rdb = nil
		}
	}

	tx := mysql.NewGormUoW(gdb)
	accounts := mysql.NewAccountRepository(gdb)
	m := metrics.NewLedger()

	lu := ledger.NewUsecase(mysql.NewLoanRepository(gdb), accounts, tx, cfg.RequestValidity())
	lu.SetObserver(m)
	lu.SetLogger(logger)
	if rdb != nil {
		lu.SetCache(rediscache.NewLoanViewCache(rdb, cfg.ViewCacheTTL()))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewID32}),
		middleware.Logger(),
		middleware.Recover(),
	)
	httpadp.Register(e, httpadp.Routes{
		Health:         httpadp.NewHandler(),
		Loans:          httpadp.NewLoanHandler(lu),
		Accounts:       httpadp.NewAccountHandler(accountuc.NewUsecase(accounts, tx)),
		Registry:       m.Registry,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
	})

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", "addr", addr, "db", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
