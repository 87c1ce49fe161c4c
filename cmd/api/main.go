package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/cache"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/database"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/messaging"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/metrics"
	"github.com/comitanigiacomo/warehouse-weeks/internal/config"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/workers"
	"github.com/comitanigiacomo/warehouse-weeks/internal/logger"
)

// @title                       Warehouse Weeks API
// @version                     1.0
// @description                 Weekly operating windows for warehouses within a season.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("connecting to database", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, log); err != nil {
		return err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, running without cache and rate limiting", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	m := metrics.New("warehouse_weeks")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events domain.EventPublisher
	var dispatcher *workers.EventDispatcher
	if cfg.Kafka.Enabled() {
		publisher := messaging.NewKafkaPublisher(cfg.Kafka)
		defer publisher.Close()

		dispatcher = workers.NewEventDispatcher(publisher, m, log)
		dispatcher.Start(ctx)
		events = dispatcher
		log.Info("publishing lifecycle events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	app := buildApplication(cfg, db, rdb, events, m, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("warehouse weeks service listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("stop signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	stop()
	if dispatcher != nil {
		select {
		case <-dispatcher.Done():
		case <-shutdownCtx.Done():
			log.Warn("event dispatcher did not drain before shutdown deadline")
		}
	}

	log.Info("server stopped gracefully")
	return nil
}
