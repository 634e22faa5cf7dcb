package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// MoneyScale is the number of fraction digits kept for every amount.
const MoneyScale = 2

// MaxMoney is the first amount that no longer fits a numeric(18,2) column.
var MaxMoney = decimal.New(1, 16)

// Money is an exact decimal amount. Postgres stores it as numeric(18,2).
// SQLite stores it as text, because a numeric column there has float
// affinity and would round on every write.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// ZeroMoney is the zero amount.
func ZeroMoney() Money {
	return Money{Decimal: decimal.Zero}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// GormDBDataType picks the column type per dialect.
func (Money) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "numeric(18,2)"
}
