package portfolio

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

type AssetRepo interface {
	CreateBatch(dbc dbctx.Context, assets []*types.Asset) ([]*types.Asset, error)
	GetByPortfolioIDs(dbc dbctx.Context, portfolioIDs []uuid.UUID) ([]*types.Asset, error)
	DeleteByPortfolioID(dbc dbctx.Context, portfolioID uuid.UUID) (int64, error)
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	repoLog := baseLog.With("repo", "AssetRepo")
	return &assetRepo{db: db, log: repoLog}
}

func (ar *assetRepo) CreateBatch(dbc dbctx.Context, assets []*types.Asset) ([]*types.Asset, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (ar *assetRepo) GetByPortfolioIDs(dbc dbctx.Context, portfolioIDs []uuid.UUID) ([]*types.Asset, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Asset
	if len(portfolioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("portfolio_id IN ?", portfolioIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assetRepo) DeleteByPortfolioID(dbc dbctx.Context, portfolioID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("portfolio_id = ?", portfolioID).
		Delete(&types.Asset{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
