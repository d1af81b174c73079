package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/investfolio/investfolio-backend/internal/data/repos/testutil"
	types "github.com/investfolio/investfolio-backend/internal/domain"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			ID:       uuid.New(),
			Username: "userrepo-test",
			Password: "pw",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByUsernames, err := repo.GetByUsernames(dbc, []string{"userrepo-test"})
	if err != nil {
		t.Fatalf("GetByUsernames: %v", err)
	}
	if len(gotByUsernames) != 1 || gotByUsernames[0].Username != "userrepo-test" {
		t.Fatalf("GetByUsernames: unexpected result: %+v", gotByUsernames)
	}

	exists, err := repo.UsernameExists(dbc, "userrepo-test")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}

	exists, err = repo.UsernameExists(dbc, "does-not-exist")
	if err != nil {
		t.Fatalf("UsernameExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("UsernameExists (missing): expected false")
	}
}
