package strategy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type IndicatorRepo interface {
	// CreateBatch inserts the whole indicator set in one statement.
	CreateBatch(dbc dbctx.Context, indicators []*types.Indicator) ([]*types.Indicator, error)
	// GetByStrategyIDs fetches children for a set of parents in one query.
	GetByStrategyIDs(dbc dbctx.Context, strategyIDs []uuid.UUID) ([]*types.Indicator, error)
	// DeleteByStrategyID removes every indicator referencing the strategy.
	// Zero rows deleted is a valid outcome, not an error.
	DeleteByStrategyID(dbc dbctx.Context, strategyID uuid.UUID) (int64, error)
}

type indicatorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIndicatorRepo(db *gorm.DB, baseLog *logger.Logger) IndicatorRepo {
	repoLog := baseLog.With("repo", "IndicatorRepo")
	return &indicatorRepo{db: db, log: repoLog}
}

func (ir *indicatorRepo) CreateBatch(dbc dbctx.Context, indicators []*types.Indicator) ([]*types.Indicator, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(indicators) == 0 {
		return []*types.Indicator{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&indicators).Error; err != nil {
		return nil, err
	}
	return indicators, nil
}

func (ir *indicatorRepo) GetByStrategyIDs(dbc dbctx.Context, strategyIDs []uuid.UUID) ([]*types.Indicator, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Indicator
	if len(strategyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("strategy_id IN ?", strategyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *indicatorRepo) DeleteByStrategyID(dbc dbctx.Context, strategyID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("strategy_id = ?", strategyID).
		Delete(&types.Indicator{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
