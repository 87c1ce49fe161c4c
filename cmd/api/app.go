package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	adapterHTTP "github.com/comitanigiacomo/warehouse-weeks/internal/adapters/handler/http"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/metrics"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/repository"
	"github.com/comitanigiacomo/warehouse-weeks/internal/config"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/domain"
	"github.com/comitanigiacomo/warehouse-weeks/internal/core/services"
)

const tokenDuration = 12 * time.Hour

type application struct {
	Router  *gin.Engine
	Metrics *metrics.Metrics
	Tokens  *services.TokenService
}

// buildApplication wires stores, services and handlers. rdb and events may be nil.
func buildApplication(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, events domain.EventPublisher, m *metrics.Metrics, logger *zap.Logger) *application {
	var windows domain.WindowRepository = repository.NewBreakerWindowRepository(
		repository.NewPostgresWindowRepository(db),
		repository.DefaultBreakerConfig(),
		logger,
	)

	var seasons domain.SeasonRepository = repository.NewPostgresSeasonRepository(db)
	if rdb != nil {
		seasons = repository.NewCachedSeasonRepository(seasons, rdb, logger)
	}

	loc := cfg.Calendar.Location

	lifecycle := services.NewLifecycleService(windows, seasons, events, m, logger)
	seasonSvc := services.NewSeasonService(seasons, windows, events, m, loc, logger)
	gate := services.NewGateService(windows, seasons, m, logger)
	nav := services.NewNavigatorService(windows, loc)
	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, tokenDuration)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		WeekHandler:   adapterHTTP.NewWeekHandler(lifecycle, nav, loc),
		GateHandler:   adapterHTTP.NewGateHandler(gate),
		SeasonHandler: adapterHTTP.NewSeasonHandler(seasonSvc),
		TokenService:  tokens,
		DB:            db,
		Redis:         rdb,
		Metrics:       m,
		Logger:        logger,
		RateLimit:     cfg.Server.RateLimit,
		StoreTimeout:  cfg.Server.StoreTimeout,
		StartTime:     time.Now(),
	})

	return &application{Router: router, Metrics: m, Tokens: tokens}
}
