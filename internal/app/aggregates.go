package app

import (
	"gorm.io/gorm"

	dataagg "github.com/investfolio/investfolio-backend/internal/data/aggregates"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/observability"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type Aggregates struct {
	Strategy  domainagg.StrategyAggregate
	Portfolio domainagg.PortfolioAggregate
}

func wireAggregates(db *gorm.DB, log *logger.Logger, repos Repos, metrics *observability.Metrics) Aggregates {
	log.Info("Wiring aggregates...")
	base := dataagg.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: dataagg.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Strategy: dataagg.NewStrategyAggregate(dataagg.StrategyAggregateDeps{
			Base:       base,
			Strategies: repos.Strategy,
			Indicators: repos.Indicator,
		}),
		Portfolio: dataagg.NewPortfolioAggregate(dataagg.PortfolioAggregateDeps{
			Base:       base,
			Portfolios: repos.Portfolio,
			Assets:     repos.Asset,
		}),
	}
}
