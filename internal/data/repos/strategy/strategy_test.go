package strategy

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/investfolio/investfolio-backend/internal/data/repos/testutil"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

func TestStrategyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewStrategyRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	first := testutil.SeedStrategy(t, ctx, tx, "repo-owner", "alpha")
	testutil.SeedStrategy(t, ctx, tx, "repo-owner", "beta")
	testutil.SeedStrategy(t, ctx, tx, "other-owner", "alpha")

	byOwner, err := repo.GetByOwner(dbc, "repo-owner")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if len(byOwner) != 2 {
		t.Fatalf("GetByOwner: expected 2 strategies, got %d", len(byOwner))
	}

	byIDs, err := repo.GetByIDs(dbc, []uuid.UUID{first.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].Title != "alpha" {
		t.Fatalf("GetByIDs: unexpected result: %+v", byIDs)
	}

	exists, err := repo.TitleExists(dbc, "alpha", "repo-owner")
	if err != nil {
		t.Fatalf("TitleExists: %v", err)
	}
	if !exists {
		t.Fatalf("TitleExists: expected true for (alpha, repo-owner)")
	}

	// Same title under another owner does not count.
	exists, err = repo.TitleExists(dbc, "beta", "other-owner")
	if err != nil {
		t.Fatalf("TitleExists (other owner): %v", err)
	}
	if exists {
		t.Fatalf("TitleExists: (beta, other-owner) should not exist")
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

func TestIndicatorRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewIndicatorRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	parentA := testutil.SeedStrategy(t, ctx, tx, "ind-owner", "parent-a")
	parentB := testutil.SeedStrategy(t, ctx, tx, "ind-owner", "parent-b")
	testutil.SeedIndicator(t, ctx, tx, parentA.ID, "ind-owner", "rsi")
	testutil.SeedIndicator(t, ctx, tx, parentA.ID, "ind-owner", "macd")
	testutil.SeedIndicator(t, ctx, tx, parentB.ID, "ind-owner", "volume")

	grouped, err := repo.GetByStrategyIDs(dbc, []uuid.UUID{parentA.ID, parentB.ID})
	if err != nil {
		t.Fatalf("GetByStrategyIDs: %v", err)
	}
	if len(grouped) != 3 {
		t.Fatalf("GetByStrategyIDs: expected 3 indicators, got %d", len(grouped))
	}

	onlyA, err := repo.GetByStrategyIDs(dbc, []uuid.UUID{parentA.ID})
	if err != nil {
		t.Fatalf("GetByStrategyIDs (single): %v", err)
	}
	if len(onlyA) != 2 {
		t.Fatalf("GetByStrategyIDs (single): expected 2 indicators, got %d", len(onlyA))
	}

	deleted, err := repo.DeleteByStrategyID(dbc, parentA.ID)
	if err != nil {
		t.Fatalf("DeleteByStrategyID: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("DeleteByStrategyID: expected 2 rows, got %d", deleted)
	}

	// Deleting children of a childless parent is a zero-row no-op.
	deleted, err = repo.DeleteByStrategyID(dbc, parentA.ID)
	if err != nil {
		t.Fatalf("DeleteByStrategyID (repeat): %v", err)
	}
	if deleted != 0 {
		t.Fatalf("DeleteByStrategyID (repeat): expected 0 rows, got %d", deleted)
	}
}
