package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/warehouse-weeks/docs"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/warehouse-weeks/internal/adapters/metrics"
)

type RouterDependencies struct {
	WeekHandler   *WeekHandler
	GateHandler   *GateHandler
	SeasonHandler *SeasonHandler
	TokenService  middleware.TokenValidator
	DB            *sqlx.DB
	Redis         *redis.Client
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
	RateLimit     int
	StoreTimeout  time.Duration
	StartTime     time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", healthHandler(deps))

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	if deps.Redis != nil && deps.RateLimit > 0 {
		apiV1.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute, deps.Logger))
	}

	if deps.StoreTimeout > 0 {
		apiV1.Use(middleware.Timeout(deps.StoreTimeout))
	}

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.WeekHandler.RegisterRoutes(protected)
		deps.GateHandler.RegisterRoutes(protected)
		deps.SeasonHandler.RegisterRoutes(protected)
	}

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		status := "ok"
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
