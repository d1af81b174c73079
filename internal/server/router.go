package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/investfolio/investfolio-backend/internal/http/handlers"
	httpMW "github.com/investfolio/investfolio-backend/internal/http/middleware"
	"github.com/investfolio/investfolio-backend/internal/observability"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	StrategyHandler  *httpH.StrategyHandler
	PortfolioHandler *httpH.PortfolioHandler
	HealthHandler    *httpH.HealthHandler

	Metrics *observability.Metrics
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if observability.TracingEnabled() {
		r.Use(otelgin.Middleware("investfolio-backend"))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	// Always registered; a disabled registry writes an empty exposition.
	r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/register", cfg.AuthHandler.Register)
		r.POST("/login", cfg.AuthHandler.Login)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Strategies
		if cfg.StrategyHandler != nil {
			protected.GET("/strategies", cfg.StrategyHandler.List)
			protected.GET("/strategies/:owner", cfg.StrategyHandler.GetByOwner)
			protected.POST("/strategies", cfg.StrategyHandler.Create)
			protected.DELETE("/strategies/:id", cfg.StrategyHandler.Delete)
		}

		// Portfolios
		if cfg.PortfolioHandler != nil {
			protected.GET("/portfolios", cfg.PortfolioHandler.List)
			protected.GET("/portfolios/:owner", cfg.PortfolioHandler.GetByOwner)
			protected.POST("/portfolios", cfg.PortfolioHandler.Create)
			protected.DELETE("/portfolios/:id", cfg.PortfolioHandler.Delete)
		}
	}

	return r
}
