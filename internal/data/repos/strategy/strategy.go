package strategy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type StrategyRepo interface {
	Create(dbc dbctx.Context, strategies []*types.Strategy) ([]*types.Strategy, error)
	ListAll(dbc dbctx.Context) ([]*types.Strategy, error)
	GetByIDs(dbc dbctx.Context, strategyIDs []uuid.UUID) ([]*types.Strategy, error)
	GetByOwner(dbc dbctx.Context, owner string) ([]*types.Strategy, error)
	TitleExists(dbc dbctx.Context, title, owner string) (bool, error)
	// DeleteByID removes the strategy row and reports how many rows went away,
	// so callers can tell "nothing to delete" apart from a store fault.
	DeleteByID(dbc dbctx.Context, strategyID uuid.UUID) (int64, error)
}

type strategyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStrategyRepo(db *gorm.DB, baseLog *logger.Logger) StrategyRepo {
	repoLog := baseLog.With("repo", "StrategyRepo")
	return &strategyRepo{db: db, log: repoLog}
}

func (sr *strategyRepo) Create(dbc dbctx.Context, strategies []*types.Strategy) ([]*types.Strategy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(strategies) == 0 {
		return []*types.Strategy{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&strategies).Error; err != nil {
		return nil, err
	}

	return strategies, nil
}

func (sr *strategyRepo) ListAll(dbc dbctx.Context) ([]*types.Strategy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Strategy
	if err := transaction.WithContext(dbc.Ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *strategyRepo) GetByIDs(dbc dbctx.Context, strategyIDs []uuid.UUID) ([]*types.Strategy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Strategy
	if len(strategyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", strategyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *strategyRepo) GetByOwner(dbc dbctx.Context, owner string) ([]*types.Strategy, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Strategy
	if err := transaction.WithContext(dbc.Ctx).
		Where("owner = ?", owner).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *strategyRepo) TitleExists(dbc dbctx.Context, title, owner string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Strategy{}).
		Where("title = ? AND owner = ?", title, owner).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (sr *strategyRepo) DeleteByID(dbc dbctx.Context, strategyID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = sr.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", strategyID).
		Delete(&types.Strategy{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
