package app

import (
	httpH "github.com/investfolio/investfolio-backend/internal/http/handlers"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type Handlers struct {
	Auth      *httpH.AuthHandler
	Strategy  *httpH.StrategyHandler
	Portfolio *httpH.PortfolioHandler
	Health    *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:      httpH.NewAuthHandler(services.Auth),
		Strategy:  httpH.NewStrategyHandler(services.Strategy),
		Portfolio: httpH.NewPortfolioHandler(services.Portfolio),
		Health:    httpH.NewHealthHandler(),
	}
}
