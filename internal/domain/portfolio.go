package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Portfolio is the parent of the Portfolio+Assets aggregate, unique per
// (title, owner) like Strategy.
type Portfolio struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Owner           string          `gorm:"not null;index;uniqueIndex:ux_portfolio_title_owner;column:owner" json:"owner"`
	Title           string          `gorm:"not null;uniqueIndex:ux_portfolio_title_owner;column:title" json:"title"`
	InvestorProfile string          `gorm:"column:investor_profile" json:"investor_profile"`
	Capital         decimal.Decimal `gorm:"type:numeric;column:capital" json:"capital"`
	Modality        string          `gorm:"column:modality" json:"modality"`
	Markets         datatypes.JSON  `gorm:"column:markets" json:"markets"`
	Broker          string          `gorm:"column:broker" json:"broker"`

	BrokerageFees decimal.Decimal `gorm:"type:numeric;column:brokerage_fees" json:"brokerage_fees"`
	ExchangeFees  decimal.Decimal `gorm:"type:numeric;column:exchange_fees" json:"exchange_fees"`
	CustodyFee    decimal.Decimal `gorm:"type:numeric;column:custody_fee" json:"custody_fee"`
	Spread        decimal.Decimal `gorm:"type:numeric;column:spread" json:"spread"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Portfolio) TableName() string { return "portfolio" }

// Asset belongs to exactly one Portfolio.
type Asset struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Owner         string          `gorm:"not null;column:owner" json:"owner"`
	PortfolioID   uuid.UUID       `gorm:"type:uuid;not null;index;column:portfolio_id" json:"portfolio_id"`
	Symbol        string          `gorm:"not null;column:symbol" json:"symbol"`
	BrokerageRate decimal.Decimal `gorm:"type:numeric;column:brokerage_rate" json:"brokerage_rate"`
	RegisteredAt  time.Time       `gorm:"not null;default:now();column:registered_at" json:"registered_at"`
}

func (Asset) TableName() string { return "asset" }

// PortfolioWithAssets is the scoped-read projection for portfolios.
type PortfolioWithAssets struct {
	Portfolio
	Assets []*Asset `json:"assets"`
}
