package services

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/investfolio/investfolio-backend/internal/domain"
)

func TestGroupAssetsByPortfolio(t *testing.T) {
	a := &types.Portfolio{ID: uuid.New(), Owner: "bob", Title: "growth"}
	b := &types.Portfolio{ID: uuid.New(), Owner: "bob", Title: "income"}
	assets := []*types.Asset{
		{ID: uuid.New(), PortfolioID: b.ID, Symbol: "ABCD3"},
		{ID: uuid.New(), PortfolioID: b.ID, Symbol: "EFGH11"},
		{ID: uuid.New(), PortfolioID: b.ID, Symbol: "IJKL4"},
	}

	grouped := groupAssetsByPortfolio([]*types.Portfolio{a, b}, assets)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(grouped))
	}
	if grouped[0].Assets == nil || len(grouped[0].Assets) != 0 {
		t.Fatalf("childless portfolio must carry an empty slice: %+v", grouped[0].Assets)
	}
	if len(grouped[1].Assets) != 3 {
		t.Fatalf("portfolio income: expected 3 assets, got %d", len(grouped[1].Assets))
	}
	for _, asset := range grouped[1].Assets {
		if asset.PortfolioID != b.ID {
			t.Fatalf("asset %q grouped under the wrong parent", asset.Symbol)
		}
	}
}
