package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ordermgmt/internal/config"
	"ordermgmt/internal/infrastructure/logger"
	"ordermgmt/internal/infrastructure/mysql"
	"ordermgmt/internal/infrastructure/postgres"
	"ordermgmt/internal/infrastructure/redis"
	"ordermgmt/internal/order"
	"ordermgmt/internal/order/service"
	"ordermgmt/internal/ratelimit"
	"ordermgmt/internal/respond"
	"ordermgmt/internal/server"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

const ordersTable = "orders"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.App.Env)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, closeDB, err := openStore(ctx, cfg.Database, zapLogger)
	cancel()
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	defer closeDB()

	limiter, closeRedis := openLimiter(cfg, zapLogger)
	defer closeRedis()

	responder := respond.New(zapLogger, !cfg.IsProduction())
	orderCtrl := order.NewModule(repo, responder, zapLogger)

	router := server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Version:   version,
		Orders:    orderCtrl,
		Responder: responder,
		Logger:    zapLogger,
		Limiter:   limiter,
	})

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	zapLogger.Info("server ready",
		zap.String("addr", srv.Addr()),
		zap.String("env", cfg.App.Env),
		zap.String("apiBase", "/api/"+cfg.App.APIVersion),
	)

	select {
	case sig := <-quit:
		zapLogger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			zapLogger.Error("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}

// openStore connects to the configured engine and returns the matching order
// repository along with its close function.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (service.OrderRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connected", zap.String("driver", cfg.Driver), zap.String("host", cfg.Host))

		if ok, err := mysql.TableExists(ctx, db, ordersTable); err != nil || !ok {
			logger.Warn("orders table not found, run the schema migration before serving traffic", zap.Error(err))
		}
		return order.NewMySQLRepository(db), func() {
			if err := db.Close(); err != nil {
				logger.Error("closing database", zap.Error(err))
			}
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connected", zap.String("driver", cfg.Driver), zap.String("host", cfg.Host))

		if ok, err := postgres.TableExists(ctx, pool, ordersTable); err != nil || !ok {
			logger.Warn("orders table not found, run the schema migration before serving traffic", zap.Error(err))
		}
		return order.NewPostgresRepository(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// openLimiter returns a nil limiter when Redis is not configured or not
// reachable; requests are then served without rate limiting.
func openLimiter(cfg *config.Config, logger *zap.Logger) (ratelimit.Limiter, func()) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
		return nil, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		return nil, func() {}
	}
	logger.Info("rate limiting enabled",
		zap.Int("max", cfg.RateLimit.Max),
		zap.Duration("window", cfg.RateLimit.Window),
	)

	return ratelimit.NewRedisLimiter(client, cfg.RateLimit.Max, cfg.RateLimit.Window), func() {
		if err := client.Close(); err != nil {
			logger.Error("closing redis client", zap.Error(err))
		}
	}
}
