package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/investfolio/investfolio-backend/internal/data/repos/testutil"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

func TestPortfolioRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPortfolioRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	first := testutil.SeedPortfolio(t, ctx, tx, "pf-owner", "growth")
	testutil.SeedPortfolio(t, ctx, tx, "pf-owner", "income")
	testutil.SeedPortfolio(t, ctx, tx, "other-owner", "growth")

	byOwner, err := repo.GetByOwner(dbc, "pf-owner")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if len(byOwner) != 2 {
		t.Fatalf("GetByOwner: expected 2 portfolios, got %d", len(byOwner))
	}

	exists, err := repo.TitleExists(dbc, "growth", "pf-owner")
	if err != nil {
		t.Fatalf("TitleExists: %v", err)
	}
	if !exists {
		t.Fatalf("TitleExists: expected true for (growth, pf-owner)")
	}

	exists, err = repo.TitleExists(dbc, "income", "other-owner")
	if err != nil {
		t.Fatalf("TitleExists (other owner): %v", err)
	}
	if exists {
		t.Fatalf("TitleExists: (income, other-owner) should not exist")
	}

	affected, err := repo.DeleteByID(dbc, first.ID)
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if affected != 1 {
		t.Fatalf("DeleteByID: expected 1 row affected, got %d", affected)
	}

	affected, err = repo.DeleteByID(dbc, first.ID)
	if err != nil {
		t.Fatalf("DeleteByID (repeat): %v", err)
	}
	if affected != 0 {
		t.Fatalf("DeleteByID (repeat): expected 0 rows affected, got %d", affected)
	}
}

func TestAssetRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewAssetRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	parentA := testutil.SeedPortfolio(t, ctx, tx, "asset-owner", "parent-a")
	parentB := testutil.SeedPortfolio(t, ctx, tx, "asset-owner", "parent-b")
	testutil.SeedAsset(t, ctx, tx, parentA.ID, "asset-owner", "ABCD3")
	testutil.SeedAsset(t, ctx, tx, parentA.ID, "asset-owner", "EFGH4")
	testutil.SeedAsset(t, ctx, tx, parentB.ID, "asset-owner", "IJKL11")

	all, err := repo.GetByPortfolioIDs(dbc, []uuid.UUID{parentA.ID, parentB.ID})
	if err != nil {
		t.Fatalf("GetByPortfolioIDs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetByPortfolioIDs: expected 3 assets, got %d", len(all))
	}

	deleted, err := repo.DeleteByPortfolioID(dbc, parentA.ID)
	if err != nil {
		t.Fatalf("DeleteByPortfolioID: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("DeleteByPortfolioID: expected 2 rows, got %d", deleted)
	}

	deleted, err = repo.DeleteByPortfolioID(dbc, parentA.ID)
	if err != nil {
		t.Fatalf("DeleteByPortfolioID (repeat): %v", err)
	}
	if deleted != 0 {
		t.Fatalf("DeleteByPortfolioID (repeat): expected 0 rows, got %d", deleted)
	}
}
