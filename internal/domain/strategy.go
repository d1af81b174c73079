package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Strategy is the parent of the Strategy+Indicators aggregate. A strategy is
// unique per (title, owner); the composite index backs the check-then-insert
// protocol against concurrent duplicate submissions.
type Strategy struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Owner     string    `gorm:"not null;index;uniqueIndex:ux_strategy_title_owner;column:owner" json:"owner"`
	Portfolio string    `gorm:"column:portfolio" json:"portfolio"`
	Title     string    `gorm:"not null;uniqueIndex:ux_strategy_title_owner;column:title" json:"title"`

	Target       decimal.Decimal `gorm:"type:numeric;column:target" json:"target"`
	StopLoss     decimal.Decimal `gorm:"type:numeric;column:stop_loss" json:"stop_loss"`
	PartialExit  decimal.Decimal `gorm:"type:numeric;column:partial_exit" json:"partial_exit"`
	AverageEntry decimal.Decimal `gorm:"type:numeric;column:average_entry" json:"average_entry"`

	TimeHorizon int    `gorm:"column:time_horizon" json:"time_horizon"`
	TimeUnit    string `gorm:"column:time_unit" json:"time_unit"`
	Note        string `gorm:"type:text;column:note" json:"note"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Strategy) TableName() string { return "strategy" }

// Indicator belongs to exactly one Strategy and has no existence outside it.
// Configuration is an opaque structured value, never interpreted here.
type Indicator struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Owner         string         `gorm:"not null;column:owner" json:"owner"`
	StrategyID    uuid.UUID      `gorm:"type:uuid;not null;index;column:strategy_id" json:"strategy_id"`
	Name          string         `gorm:"not null;column:name" json:"name"`
	Configuration datatypes.JSON `gorm:"column:configuration" json:"configuration"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Indicator) TableName() string { return "indicator" }

// StrategyWithIndicators is the scoped-read projection: parent fields plus
// the grouped child collection. Indicators is always present, empty when the
// strategy has none.
type StrategyWithIndicators struct {
	Strategy
	Indicators []*Indicator `json:"indicators"`
}
