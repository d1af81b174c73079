package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	portfoliorepo "github.com/investfolio/investfolio-backend/internal/data/repos/portfolio"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

type PortfolioAggregateDeps struct {
	Base BaseDeps

	Portfolios portfoliorepo.PortfolioRepo
	Assets     portfoliorepo.AssetRepo
}

type portfolioAggregate struct {
	deps PortfolioAggregateDeps
}

func NewPortfolioAggregate(deps PortfolioAggregateDeps) domainagg.PortfolioAggregate {
	deps.Base = deps.Base.withDefaults()
	return &portfolioAggregate{deps: deps}
}

func (a *portfolioAggregate) Contract() domainagg.Contract {
	return domainagg.PortfolioAggregateContract
}

func (a *portfolioAggregate) CreateWithAssets(ctx context.Context, in domainagg.CreatePortfolioInput) (domainagg.CreatePortfolioResult, error) {
	const op = "Invest.Portfolio.CreateWithAssets"
	var out domainagg.CreatePortfolioResult

	owner := strings.TrimSpace(in.Owner)
	title := strings.TrimSpace(in.Title)
	if owner == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing owner", nil)
	}
	if title == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing title", nil)
	}
	if a.deps.Portfolios == nil || a.deps.Assets == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "portfolio aggregate repos not configured", nil)
	}

	exists, err := a.deps.Portfolios.TitleExists(dbctx.Context{Ctx: ctx}, title, owner)
	if err != nil {
		return out, MapError(op, err)
	}
	if exists {
		a.deps.Base.Hooks.IncConflict(op)
		return out, domainagg.NewError(domainagg.CodeConflict, op,
			fmt.Sprintf("portfolio %q already exists for owner %q", title, owner), nil)
	}

	markets := in.Markets
	if markets == nil {
		markets = []string{}
	}
	marketsJSON, err := json.Marshal(markets)
	if err != nil {
		return out, domainagg.Wrap(domainagg.CodeValidation, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		now := time.Now()
		p := &types.Portfolio{
			ID:              uuid.New(),
			Owner:           owner,
			Title:           title,
			InvestorProfile: strings.TrimSpace(in.InvestorProfile),
			Capital:         in.Capital,
			Modality:        strings.TrimSpace(in.Modality),
			Markets:         datatypes.JSON(marketsJSON),
			Broker:          strings.TrimSpace(in.Broker),
			BrokerageFees:   in.BrokerageFees,
			ExchangeFees:    in.ExchangeFees,
			CustodyFee:      in.CustodyFee,
			Spread:          in.Spread,
		}
		if _, err := a.deps.Portfolios.Create(dbc, []*types.Portfolio{p}); err != nil {
			return err
		}

		if len(in.Assets) > 0 {
			assets := make([]*types.Asset, 0, len(in.Assets))
			for _, as := range in.Assets {
				assets = append(assets, &types.Asset{
					ID:            uuid.New(),
					Owner:         owner,
					PortfolioID:   p.ID,
					Symbol:        strings.TrimSpace(as.Symbol),
					BrokerageRate: as.BrokerageRate,
					RegisteredAt:  now,
				})
			}
			if _, err := a.deps.Assets.CreateBatch(dbc, assets); err != nil {
				return err
			}
		}

		out = domainagg.CreatePortfolioResult{
			PortfolioID:   p.ID,
			AssetsCreated: len(in.Assets),
		}
		return nil
	})
	if err != nil {
		return domainagg.CreatePortfolioResult{}, err
	}
	return out, nil
}

func (a *portfolioAggregate) DeleteCascade(ctx context.Context, in domainagg.DeletePortfolioInput) (domainagg.DeletePortfolioResult, error) {
	const op = "Invest.Portfolio.DeleteCascade"
	var out domainagg.DeletePortfolioResult

	if in.PortfolioID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing portfolio_id", nil)
	}
	if a.deps.Portfolios == nil || a.deps.Assets == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "portfolio aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		assetsDeleted, err := a.deps.Assets.DeleteByPortfolioID(dbc, in.PortfolioID)
		if err != nil {
			return err
		}

		affected, err := a.deps.Portfolios.DeleteByID(dbc, in.PortfolioID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("portfolio not found: %s", in.PortfolioID.String()), nil)
		}

		out = domainagg.DeletePortfolioResult{
			PortfolioID:   in.PortfolioID,
			AssetsDeleted: int(assetsDeleted),
		}
		return nil
	})
	if err != nil {
		return domainagg.DeletePortfolioResult{}, err
	}
	return out, nil
}
