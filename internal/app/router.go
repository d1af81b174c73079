package app

import (
	"github.com/investfolio/investfolio-backend/internal/observability"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
	"github.com/investfolio/investfolio-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *server.Server {
	log.Info("Wiring router...")
	return server.NewServer(server.RouterConfig{
		Log:              log,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		StrategyHandler:  handlers.Strategy,
		PortfolioHandler: handlers.Portfolio,
		HealthHandler:    handlers.Health,
		Metrics:          metrics,
	})
}
