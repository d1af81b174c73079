package app

import (
	"gorm.io/gorm"

	portfoliorepo "github.com/investfolio/investfolio-backend/internal/data/repos/portfolio"
	strategyrepo "github.com/investfolio/investfolio-backend/internal/data/repos/strategy"
	userrepo "github.com/investfolio/investfolio-backend/internal/data/repos/user"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type Repos struct {
	User      userrepo.UserRepo
	Strategy  strategyrepo.StrategyRepo
	Indicator strategyrepo.IndicatorRepo
	Portfolio portfoliorepo.PortfolioRepo
	Asset     portfoliorepo.AssetRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      userrepo.NewUserRepo(db, log),
		Strategy:  strategyrepo.NewStrategyRepo(db, log),
		Indicator: strategyrepo.NewIndicatorRepo(db, log),
		Portfolio: portfoliorepo.NewPortfolioRepo(db, log),
		Asset:     portfoliorepo.NewAssetRepo(db, log),
	}
}
