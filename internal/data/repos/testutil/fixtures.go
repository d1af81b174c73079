package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/investfolio/investfolio-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedStrategy(tb testing.TB, ctx context.Context, tx *gorm.DB, owner, title string) *types.Strategy {
	tb.Helper()
	s := &types.Strategy{
		ID:          uuid.New(),
		Owner:       owner,
		Portfolio:   "main",
		Title:       title,
		Target:      decimal.NewFromInt(10),
		StopLoss:    decimal.NewFromInt(5),
		TimeHorizon: 30,
		TimeUnit:    "days",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed strategy: %v", err)
	}
	return s
}

func SeedIndicator(tb testing.TB, ctx context.Context, tx *gorm.DB, strategyID uuid.UUID, owner, name string) *types.Indicator {
	tb.Helper()
	i := &types.Indicator{
		ID:            uuid.New(),
		Owner:         owner,
		StrategyID:    strategyID,
		Name:          name,
		Configuration: datatypes.JSON([]byte(`{}`)),
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed indicator: %v", err)
	}
	return i
}

func SeedPortfolio(tb testing.TB, ctx context.Context, tx *gorm.DB, owner, title string) *types.Portfolio {
	tb.Helper()
	p := &types.Portfolio{
		ID:              uuid.New(),
		Owner:           owner,
		Title:           title,
		InvestorProfile: "moderate",
		Capital:         decimal.NewFromInt(10000),
		Modality:        "swing",
		Markets:         datatypes.JSON([]byte(`["stocks"]`)),
		Broker:          "clear",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed portfolio: %v", err)
	}
	return p
}

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, portfolioID uuid.UUID, owner, symbol string) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		ID:            uuid.New(),
		Owner:         owner,
		PortfolioID:   portfolioID,
		Symbol:        symbol,
		BrokerageRate: decimal.NewFromInt(10),
		RegisteredAt:  time.Now(),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}
