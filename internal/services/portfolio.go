package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	portfoliorepo "github.com/investfolio/investfolio-backend/internal/data/repos/portfolio"
	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type PortfolioService interface {
	ListAll(ctx context.Context) ([]*types.Portfolio, error)
	GetByOwner(ctx context.Context, owner string) ([]*types.PortfolioWithAssets, error)
	Create(ctx context.Context, in domainagg.CreatePortfolioInput) (domainagg.CreatePortfolioResult, error)
	Delete(ctx context.Context, portfolioID uuid.UUID) (domainagg.DeletePortfolioResult, error)
}

type portfolioService struct {
	log           *logger.Logger
	portfolioRepo portfoliorepo.PortfolioRepo
	assetRepo     portfoliorepo.AssetRepo
	aggregate     domainagg.PortfolioAggregate
}

func NewPortfolioService(
	log *logger.Logger,
	portfolioRepo portfoliorepo.PortfolioRepo,
	assetRepo portfoliorepo.AssetRepo,
	aggregate domainagg.PortfolioAggregate,
) PortfolioService {
	serviceLog := log.With("service", "PortfolioService")
	return &portfolioService{
		log:           serviceLog,
		portfolioRepo: portfolioRepo,
		assetRepo:     assetRepo,
		aggregate:     aggregate,
	}
}

func (ps *portfolioService) ListAll(ctx context.Context) ([]*types.Portfolio, error) {
	portfolios, lErr := ps.portfolioRepo.ListAll(dbctx.Context{Ctx: ctx})
	if lErr != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", lErr)
	}
	return portfolios, nil
}

func (ps *portfolioService) GetByOwner(ctx context.Context, owner string) ([]*types.PortfolioWithAssets, error) {
	owner = strings.TrimSpace(owner)
	portfolios, gErr := ps.portfolioRepo.GetByOwner(dbctx.Context{Ctx: ctx}, owner)
	if gErr != nil {
		return nil, fmt.Errorf("failed to fetch portfolios for owner: %w", gErr)
	}
	if len(portfolios) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, "PortfolioService.GetByOwner", "no portfolios registered for this owner", nil)
	}

	portfolioIDs := make([]uuid.UUID, 0, len(portfolios))
	for _, p := range portfolios {
		portfolioIDs = append(portfolioIDs, p.ID)
	}
	assets, aErr := ps.assetRepo.GetByPortfolioIDs(dbctx.Context{Ctx: ctx}, portfolioIDs)
	if aErr != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", aErr)
	}
	return groupAssetsByPortfolio(portfolios, assets), nil
}

func (ps *portfolioService) Create(ctx context.Context, in domainagg.CreatePortfolioInput) (domainagg.CreatePortfolioResult, error) {
	return ps.aggregate.CreateWithAssets(ctx, in)
}

func (ps *portfolioService) Delete(ctx context.Context, portfolioID uuid.UUID) (domainagg.DeletePortfolioResult, error) {
	return ps.aggregate.DeleteCascade(ctx, domainagg.DeletePortfolioInput{PortfolioID: portfolioID})
}

func groupAssetsByPortfolio(portfolios []*types.Portfolio, assets []*types.Asset) []*types.PortfolioWithAssets {
	byPortfolio := make(map[uuid.UUID][]*types.Asset, len(portfolios))
	for _, a := range assets {
		byPortfolio[a.PortfolioID] = append(byPortfolio[a.PortfolioID], a)
	}
	results := make([]*types.PortfolioWithAssets, 0, len(portfolios))
	for _, p := range portfolios {
		children := byPortfolio[p.ID]
		if children == nil {
			children = []*types.Asset{}
		}
		results = append(results, &types.PortfolioWithAssets{
			Portfolio: *p,
			Assets:    children,
		})
	}
	return results
}
