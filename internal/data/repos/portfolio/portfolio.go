package portfolio

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type PortfolioRepo interface {
	Create(dbc dbctx.Context, portfolios []*types.Portfolio) ([]*types.Portfolio, error)
	ListAll(dbc dbctx.Context) ([]*types.Portfolio, error)
	GetByIDs(dbc dbctx.Context, portfolioIDs []uuid.UUID) ([]*types.Portfolio, error)
	GetByOwner(dbc dbctx.Context, owner string) ([]*types.Portfolio, error)
	TitleExists(dbc dbctx.Context, title, owner string) (bool, error)
	DeleteByID(dbc dbctx.Context, portfolioID uuid.UUID) (int64, error)
}

type portfolioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPortfolioRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioRepo {
	repoLog := baseLog.With("repo", "PortfolioRepo")
	return &portfolioRepo{db: db, log: repoLog}
}

func (pr *portfolioRepo) Create(dbc dbctx.Context, portfolios []*types.Portfolio) ([]*types.Portfolio, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(portfolios) == 0 {
		return []*types.Portfolio{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (pr *portfolioRepo) ListAll(dbc dbctx.Context) ([]*types.Portfolio, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Portfolio
	if err := transaction.WithContext(dbc.Ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *portfolioRepo) GetByIDs(dbc dbctx.Context, portfolioIDs []uuid.UUID) ([]*types.Portfolio, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Portfolio
	if len(portfolioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", portfolioIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *portfolioRepo) GetByOwner(dbc dbctx.Context, owner string) ([]*types.Portfolio, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Portfolio
	if err := transaction.WithContext(dbc.Ctx).
		Where("owner = ?", owner).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *portfolioRepo) TitleExists(dbc dbctx.Context, title, owner string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Portfolio{}).
		Where("title = ? AND owner = ?", title, owner).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *portfolioRepo) DeleteByID(dbc dbctx.Context, portfolioID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", portfolioID).
		Delete(&types.Portfolio{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
