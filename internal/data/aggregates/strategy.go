package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	strategyrepo "github.com/investfolio/investfolio-backend/internal/data/repos/strategy"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

type StrategyAggregateDeps struct {
	Base BaseDeps

	Strategies strategyrepo.StrategyRepo
	Indicators strategyrepo.IndicatorRepo
}

type strategyAggregate struct {
	deps StrategyAggregateDeps
}

func NewStrategyAggregate(deps StrategyAggregateDeps) domainagg.StrategyAggregate {
	deps.Base = deps.Base.withDefaults()
	return &strategyAggregate{deps: deps}
}

func (a *strategyAggregate) Contract() domainagg.Contract {
	return domainagg.StrategyAggregateContract
}

func (a *strategyAggregate) CreateWithIndicators(ctx context.Context, in domainagg.CreateStrategyInput) (domainagg.CreateStrategyResult, error) {
	const op = "Invest.Strategy.CreateWithIndicators"
	var out domainagg.CreateStrategyResult

	owner := strings.TrimSpace(in.Owner)
	title := strings.TrimSpace(in.Title)
	if owner == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing owner", nil)
	}
	if title == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing title", nil)
	}
	if a.deps.Strategies == nil || a.deps.Indicators == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "strategy aggregate repos not configured", nil)
	}

	// Preserved check-then-insert protocol: the existence check runs before
	// the transaction opens. The composite unique index backstops the race; a
	// duplicate slipping past the check surfaces as a conflict from the insert.
	exists, err := a.deps.Strategies.TitleExists(dbctx.Context{Ctx: ctx}, title, owner)
	if err != nil {
		return out, MapError(op, err)
	}
	if exists {
		a.deps.Base.Hooks.IncConflict(op)
		return out, domainagg.NewError(domainagg.CodeConflict, op,
			fmt.Sprintf("strategy %q already exists for owner %q", title, owner), nil)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		st := &types.Strategy{
			ID:           uuid.New(),
			Owner:        owner,
			Portfolio:    strings.TrimSpace(in.Portfolio),
			Title:        title,
			Target:       in.Target,
			StopLoss:     in.StopLoss,
			PartialExit:  in.PartialExit,
			AverageEntry: in.AverageEntry,
			TimeHorizon:  in.TimeHorizon,
			TimeUnit:     strings.TrimSpace(in.TimeUnit),
			Note:         in.Note,
		}
		if _, err := a.deps.Strategies.Create(dbc, []*types.Strategy{st}); err != nil {
			return err
		}

		// Children ride on the parent's generated identity, so the parent
		// insert has to come first.
		if len(in.Indicators) > 0 {
			indicators := make([]*types.Indicator, 0, len(in.Indicators))
			for _, ind := range in.Indicators {
				cfg := datatypes.JSON(ind.Configuration)
				if len(ind.Configuration) == 0 {
					cfg = datatypes.JSON([]byte("null"))
				}
				indicators = append(indicators, &types.Indicator{
					ID:            uuid.New(),
					Owner:         owner,
					StrategyID:    st.ID,
					Name:          strings.TrimSpace(ind.Name),
					Configuration: cfg,
				})
			}
			if _, err := a.deps.Indicators.CreateBatch(dbc, indicators); err != nil {
				return err
			}
		}

		out = domainagg.CreateStrategyResult{
			StrategyID:        st.ID,
			IndicatorsCreated: len(in.Indicators),
		}
		return nil
	})
	if err != nil {
		return domainagg.CreateStrategyResult{}, err
	}
	return out, nil
}

func (a *strategyAggregate) DeleteCascade(ctx context.Context, in domainagg.DeleteStrategyInput) (domainagg.DeleteStrategyResult, error) {
	const op = "Invest.Strategy.DeleteCascade"
	var out domainagg.DeleteStrategyResult

	if in.StrategyID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing strategy_id", nil)
	}
	if a.deps.Strategies == nil || a.deps.Indicators == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "strategy aggregate repos not configured", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// Children go first; the foreign key forbids the reverse order.
		// Deleting zero indicators is a valid outcome, not a failure.
		indicatorsDeleted, err := a.deps.Indicators.DeleteByStrategyID(dbc, in.StrategyID)
		if err != nil {
			return err
		}

		affected, err := a.deps.Strategies.DeleteByID(dbc, in.StrategyID)
		if err != nil {
			return err
		}
		if affected == 0 {
			// The id never existed. Rolling back also undoes the vacuous
			// child delete above.
			return domainagg.NewError(domainagg.CodeNotFound, op,
				fmt.Sprintf("strategy not found: %s", in.StrategyID.String()), nil)
		}

		out = domainagg.DeleteStrategyResult{
			StrategyID:        in.StrategyID,
			IndicatorsDeleted: int(indicatorsDeleted),
		}
		return nil
	})
	if err != nil {
		return domainagg.DeleteStrategyResult{}, err
	}
	return out, nil
}
