package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single dated, categorized expense owned by one user.
// Amounts are fixed-point currency values with two fractional digits.
type Expense struct {
	Base
	UserID      uint            `gorm:"not null;index:idx_expenses_user_date" json:"user_id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index:idx_expenses_user_date" json:"date"`
	Category    Category        `gorm:"not null" json:"category"`
	Notes       string          `json:"notes,omitempty"`
}
