package aggregates

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var StrategyAggregateContract = Contract{
	Name:             "Invest.StrategyAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Owns atomic strategy+indicator creation and cascading deletion.",
}

// StrategyAggregate owns the strategy+indicators composition lifecycle.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type StrategyAggregate interface {
	Aggregate

	// CreateWithIndicators atomically persists a strategy and its indicator set.
	// A strategy with the same (title, owner) yields CodeConflict.
	CreateWithIndicators(ctx context.Context, in CreateStrategyInput) (CreateStrategyResult, error)

	// DeleteCascade atomically removes a strategy and every indicator referencing it.
	// An unknown id yields CodeNotFound with nothing deleted.
	DeleteCascade(ctx context.Context, in DeleteStrategyInput) (DeleteStrategyResult, error)
}

type CreateStrategyInput struct {
	Owner        string
	Portfolio    string
	Title        string
	Target       decimal.Decimal
	StopLoss     decimal.Decimal
	PartialExit  decimal.Decimal
	AverageEntry decimal.Decimal
	TimeHorizon  int
	TimeUnit     string
	Note         string
	Indicators   []IndicatorInput
}

type IndicatorInput struct {
	Name          string
	Configuration json.RawMessage
}

type CreateStrategyResult struct {
	StrategyID        uuid.UUID
	IndicatorsCreated int
}

type DeleteStrategyInput struct {
	StrategyID uuid.UUID
}

type DeleteStrategyResult struct {
	StrategyID        uuid.UUID
	IndicatorsDeleted int
}
