package app

import (
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
	"github.com/investfolio/investfolio-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Strategy  services.StrategyService
	Portfolio services.PortfolioService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, aggregates Aggregates) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:      services.NewAuthService(log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Strategy:  services.NewStrategyService(log, repos.Strategy, repos.Indicator, aggregates.Strategy),
		Portfolio: services.NewPortfolioService(log, repos.Portfolio, repos.Asset, aggregates.Portfolio),
	}
}
