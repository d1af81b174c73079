package aggregates_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dataagg "github.com/investfolio/investfolio-backend/internal/data/aggregates"
	aggtestutil "github.com/investfolio/investfolio-backend/internal/data/aggregates/testutil"
	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
)

type stubPortfolioRepo struct {
	titleExists    bool
	deleteAffected int64

	created []*types.Portfolio
}

func (s *stubPortfolioRepo) Create(dbc dbctx.Context, portfolios []*types.Portfolio) ([]*types.Portfolio, error) {
	s.created = append(s.created, portfolios...)
	return portfolios, nil
}

func (s *stubPortfolioRepo) ListAll(dbc dbctx.Context) ([]*types.Portfolio, error) { return nil, nil }

func (s *stubPortfolioRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Portfolio, error) {
	return nil, nil
}

func (s *stubPortfolioRepo) GetByOwner(dbc dbctx.Context, owner string) ([]*types.Portfolio, error) {
	return nil, nil
}

func (s *stubPortfolioRepo) TitleExists(dbc dbctx.Context, title, owner string) (bool, error) {
	return s.titleExists, nil
}

func (s *stubPortfolioRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	return s.deleteAffected, nil
}

type stubAssetRepo struct {
	deleteAffected int64

	created []*types.Asset
}

func (s *stubAssetRepo) CreateBatch(dbc dbctx.Context, assets []*types.Asset) ([]*types.Asset, error) {
	s.created = append(s.created, assets...)
	return assets, nil
}

func (s *stubAssetRepo) GetByPortfolioIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Asset, error) {
	return nil, nil
}

func (s *stubAssetRepo) DeleteByPortfolioID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	return s.deleteAffected, nil
}

func newPortfolioAggregateForTest(portfolios *stubPortfolioRepo, assets *stubAssetRepo, runner *aggtestutil.InjectedTxRunner, hooks *aggtestutil.HooksRecorder) domainagg.PortfolioAggregate {
	return dataagg.NewPortfolioAggregate(dataagg.PortfolioAggregateDeps{
		Base: dataagg.BaseDeps{
			Runner: runner,
			Hooks:  hooks,
		},
		Portfolios: portfolios,
		Assets:     assets,
	})
}

func TestPortfolioCreateWithAssets(t *testing.T) {
	portfolios := &stubPortfolioRepo{}
	assets := &stubAssetRepo{}
	runner := &aggtestutil.InjectedTxRunner{}
	agg := newPortfolioAggregateForTest(portfolios, assets, runner, &aggtestutil.HooksRecorder{})

	result, err := agg.CreateWithAssets(context.Background(), domainagg.CreatePortfolioInput{
		Owner:    "bob",
		Title:    "dividends",
		Capital:  decimal.NewFromInt(50000),
		Modality: "long",
		Markets:  []string{"stocks", "reits"},
		Assets: []domainagg.AssetInput{
			{Symbol: "ABCD3", BrokerageRate: decimal.NewFromFloat(0.5)},
			{Symbol: "EFGH11"},
		},
	})
	if err != nil {
		t.Fatalf("CreateWithAssets: %v", err)
	}
	if result.AssetsCreated != 2 {
		t.Fatalf("AssetsCreated: got %d, want 2", result.AssetsCreated)
	}
	if runner.CommitCalls != 1 {
		t.Fatalf("expected one commit, got %d", runner.CommitCalls)
	}
	if len(portfolios.created) != 1 {
		t.Fatalf("persisted portfolios: %d", len(portfolios.created))
	}
	if got := string(portfolios.created[0].Markets); got != `["stocks","reits"]` {
		t.Fatalf("markets column: %s", got)
	}
	for _, a := range assets.created {
		if a.PortfolioID != result.PortfolioID {
			t.Fatalf("asset %q not linked to parent", a.Symbol)
		}
		if a.RegisteredAt.IsZero() {
			t.Fatalf("asset %q missing registration time", a.Symbol)
		}
	}
}

func TestPortfolioCreateNilMarkets(t *testing.T) {
	portfolios := &stubPortfolioRepo{}
	agg := newPortfolioAggregateForTest(portfolios, &stubAssetRepo{}, &aggtestutil.InjectedTxRunner{}, &aggtestutil.HooksRecorder{})

	_, err := agg.CreateWithAssets(context.Background(), domainagg.CreatePortfolioInput{
		Owner: "bob",
		Title: "empty-markets",
	})
	if err != nil {
		t.Fatalf("CreateWithAssets: %v", err)
	}
	if got := string(portfolios.created[0].Markets); got != `[]` {
		t.Fatalf("nil markets should serialize as an empty list, got %s", got)
	}
}

func TestPortfolioCreateDuplicateTitle(t *testing.T) {
	runner := &aggtestutil.InjectedTxRunner{}
	hooks := &aggtestutil.HooksRecorder{}
	agg := newPortfolioAggregateForTest(&stubPortfolioRepo{titleExists: true}, &stubAssetRepo{}, runner, hooks)

	_, err := agg.CreateWithAssets(context.Background(), domainagg.CreatePortfolioInput{
		Owner: "bob",
		Title: "dividends",
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("got %v, want conflict", err)
	}
	if runner.BeginCalls != 0 {
		t.Fatalf("duplicate check must reject before the transaction")
	}
	if len(hooks.Conflicts) != 1 {
		t.Fatalf("conflict hook: %+v", hooks.Conflicts)
	}
}

func TestPortfolioDeleteCascade(t *testing.T) {
	runner := &aggtestutil.InjectedTxRunner{}
	agg := newPortfolioAggregateForTest(&stubPortfolioRepo{deleteAffected: 1}, &stubAssetRepo{deleteAffected: 4}, runner, &aggtestutil.HooksRecorder{})

	id := uuid.New()
	result, err := agg.DeleteCascade(context.Background(), domainagg.DeletePortfolioInput{PortfolioID: id})
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if result.PortfolioID != id || result.AssetsDeleted != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPortfolioDeleteUnknownID(t *testing.T) {
	runner := &aggtestutil.InjectedTxRunner{}
	agg := newPortfolioAggregateForTest(&stubPortfolioRepo{deleteAffected: 0}, &stubAssetRepo{}, runner, &aggtestutil.HooksRecorder{})

	_, err := agg.DeleteCascade(context.Background(), domainagg.DeletePortfolioInput{PortfolioID: uuid.New()})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("got %v, want not_found", err)
	}
	if runner.RollbackCalls != 1 {
		t.Fatalf("missing parent must roll back, got %d rollbacks", runner.RollbackCalls)
	}
}
