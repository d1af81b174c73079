package aggregates

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var PortfolioAggregateContract = Contract{
	Name:             "Invest.PortfolioAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Owns atomic portfolio+asset creation and cascading deletion.",
}

// PortfolioAggregate owns the portfolio+assets composition lifecycle.
type PortfolioAggregate interface {
	Aggregate

	// CreateWithAssets atomically persists a portfolio and its asset set.
	// A portfolio with the same (title, owner) yields CodeConflict.
	CreateWithAssets(ctx context.Context, in CreatePortfolioInput) (CreatePortfolioResult, error)

	// DeleteCascade atomically removes a portfolio and every asset referencing it.
	// An unknown id yields CodeNotFound with nothing deleted.
	DeleteCascade(ctx context.Context, in DeletePortfolioInput) (DeletePortfolioResult, error)
}

type CreatePortfolioInput struct {
	Owner           string
	Title           string
	InvestorProfile string
	Capital         decimal.Decimal
	Modality        string
	Markets         []string
	Broker          string
	BrokerageFees   decimal.Decimal
	ExchangeFees    decimal.Decimal
	CustodyFee      decimal.Decimal
	Spread          decimal.Decimal
	Assets          []AssetInput
}

type AssetInput struct {
	Symbol        string
	BrokerageRate decimal.Decimal
}

type CreatePortfolioResult struct {
	PortfolioID   uuid.UUID
	AssetsCreated int
}

type DeletePortfolioInput struct {
	PortfolioID uuid.UUID
}

type DeletePortfolioResult struct {
	PortfolioID   uuid.UUID
	AssetsDeleted int
}
