package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	strategyrepo "github.com/investfolio/investfolio-backend/internal/data/repos/strategy"
	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type StrategyService interface {
	ListAll(ctx context.Context) ([]*types.Strategy, error)
	// GetByOwner returns the owner's strategies with their indicators attached.
	// An owner with no strategies yields an aggregate not_found error.
	GetByOwner(ctx context.Context, owner string) ([]*types.StrategyWithIndicators, error)
	Create(ctx context.Context, in domainagg.CreateStrategyInput) (domainagg.CreateStrategyResult, error)
	Delete(ctx context.Context, strategyID uuid.UUID) (domainagg.DeleteStrategyResult, error)
}

type strategyService struct {
	log           *logger.Logger
	strategyRepo  strategyrepo.StrategyRepo
	indicatorRepo strategyrepo.IndicatorRepo
	aggregate     domainagg.StrategyAggregate
}

func NewStrategyService(
	log *logger.Logger,
	strategyRepo strategyrepo.StrategyRepo,
	indicatorRepo strategyrepo.IndicatorRepo,
	aggregate domainagg.StrategyAggregate,
) StrategyService {
	serviceLog := log.With("service", "StrategyService")
	return &strategyService{
		log:           serviceLog,
		strategyRepo:  strategyRepo,
		indicatorRepo: indicatorRepo,
		aggregate:     aggregate,
	}
}

func (ss *strategyService) ListAll(ctx context.Context) ([]*types.Strategy, error) {
	strategies, lErr := ss.strategyRepo.ListAll(dbctx.Context{Ctx: ctx})
	if lErr != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", lErr)
	}
	return strategies, nil
}

func (ss *strategyService) GetByOwner(ctx context.Context, owner string) ([]*types.StrategyWithIndicators, error) {
	owner = strings.TrimSpace(owner)
	strategies, gErr := ss.strategyRepo.GetByOwner(dbctx.Context{Ctx: ctx}, owner)
	if gErr != nil {
		return nil, fmt.Errorf("failed to fetch strategies for owner: %w", gErr)
	}
	if len(strategies) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, "StrategyService.GetByOwner", "no strategies registered for this owner", nil)
	}

	strategyIDs := make([]uuid.UUID, 0, len(strategies))
	for _, s := range strategies {
		strategyIDs = append(strategyIDs, s.ID)
	}
	indicators, iErr := ss.indicatorRepo.GetByStrategyIDs(dbctx.Context{Ctx: ctx}, strategyIDs)
	if iErr != nil {
		return nil, fmt.Errorf("failed to fetch indicators: %w", iErr)
	}
	return groupIndicatorsByStrategy(strategies, indicators), nil
}

func (ss *strategyService) Create(ctx context.Context, in domainagg.CreateStrategyInput) (domainagg.CreateStrategyResult, error) {
	return ss.aggregate.CreateWithIndicators(ctx, in)
}

func (ss *strategyService) Delete(ctx context.Context, strategyID uuid.UUID) (domainagg.DeleteStrategyResult, error) {
	return ss.aggregate.DeleteCascade(ctx, domainagg.DeleteStrategyInput{StrategyID: strategyID})
}

// groupIndicatorsByStrategy stitches a batched child query back onto its
// parents. Parents keep their query order; a parent with no indicators gets an
// empty slice, never nil.
func groupIndicatorsByStrategy(strategies []*types.Strategy, indicators []*types.Indicator) []*types.StrategyWithIndicators {
	byStrategy := make(map[uuid.UUID][]*types.Indicator, len(strategies))
	for _, ind := range indicators {
		byStrategy[ind.StrategyID] = append(byStrategy[ind.StrategyID], ind)
	}
	results := make([]*types.StrategyWithIndicators, 0, len(strategies))
	for _, s := range strategies {
		children := byStrategy[s.ID]
		if children == nil {
			children = []*types.Indicator{}
		}
		results = append(results, &types.StrategyWithIndicators{
			Strategy:   *s,
			Indicators: children,
		})
	}
	return results
}
