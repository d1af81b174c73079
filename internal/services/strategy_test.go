package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/platform/dbctx"
	"github.com/investfolio/investfolio-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeStrategyRepo struct {
	byOwner map[string][]*types.Strategy
}

func (f *fakeStrategyRepo) Create(dbc dbctx.Context, s []*types.Strategy) ([]*types.Strategy, error) {
	return s, nil
}
func (f *fakeStrategyRepo) ListAll(dbc dbctx.Context) ([]*types.Strategy, error) { return nil, nil }
func (f *fakeStrategyRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Strategy, error) {
	return nil, nil
}
func (f *fakeStrategyRepo) GetByOwner(dbc dbctx.Context, owner string) ([]*types.Strategy, error) {
	return f.byOwner[owner], nil
}
func (f *fakeStrategyRepo) TitleExists(dbc dbctx.Context, title, owner string) (bool, error) {
	return false, nil
}
func (f *fakeStrategyRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeIndicatorRepo struct {
	indicators []*types.Indicator
}

func (f *fakeIndicatorRepo) CreateBatch(dbc dbctx.Context, in []*types.Indicator) ([]*types.Indicator, error) {
	return in, nil
}
func (f *fakeIndicatorRepo) GetByStrategyIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Indicator, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []*types.Indicator
	for _, ind := range f.indicators {
		if want[ind.StrategyID] {
			out = append(out, ind)
		}
	}
	return out, nil
}
func (f *fakeIndicatorRepo) DeleteByStrategyID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func TestGroupIndicatorsByStrategy(t *testing.T) {
	a := &types.Strategy{ID: uuid.New(), Owner: "alice", Title: "a"}
	b := &types.Strategy{ID: uuid.New(), Owner: "alice", Title: "b"}
	indicators := []*types.Indicator{
		{ID: uuid.New(), StrategyID: a.ID, Name: "rsi"},
		{ID: uuid.New(), StrategyID: a.ID, Name: "macd"},
	}

	grouped := groupIndicatorsByStrategy([]*types.Strategy{a, b}, indicators)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 projections, got %d", len(grouped))
	}
	if grouped[0].Title != "a" || grouped[1].Title != "b" {
		t.Fatalf("parent order not preserved: %q, %q", grouped[0].Title, grouped[1].Title)
	}
	if len(grouped[0].Indicators) != 2 {
		t.Fatalf("strategy a: expected 2 indicators, got %d", len(grouped[0].Indicators))
	}
	if grouped[1].Indicators == nil {
		t.Fatalf("childless strategy must carry an empty slice, not nil")
	}
	if len(grouped[1].Indicators) != 0 {
		t.Fatalf("strategy b: expected 0 indicators, got %d", len(grouped[1].Indicators))
	}
}

func TestStrategyGetByOwner(t *testing.T) {
	parent := &types.Strategy{ID: uuid.New(), Owner: "alice", Title: "swing"}
	repo := &fakeStrategyRepo{byOwner: map[string][]*types.Strategy{
		"alice": {parent},
	}}
	indicators := &fakeIndicatorRepo{indicators: []*types.Indicator{
		{ID: uuid.New(), StrategyID: parent.ID, Name: "rsi"},
		{ID: uuid.New(), StrategyID: uuid.New(), Name: "stray"},
	}}
	svc := NewStrategyService(testLogger(t), repo, indicators, nil)

	results, err := svc.GetByOwner(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 projection, got %d", len(results))
	}
	if len(results[0].Indicators) != 1 || results[0].Indicators[0].Name != "rsi" {
		t.Fatalf("unexpected children: %+v", results[0].Indicators)
	}
}

func TestStrategyGetByOwnerEmpty(t *testing.T) {
	svc := NewStrategyService(testLogger(t), &fakeStrategyRepo{}, &fakeIndicatorRepo{}, nil)

	_, err := svc.GetByOwner(context.Background(), "nobody")
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("got %v, want not_found", err)
	}
}
