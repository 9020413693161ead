package models

import "github.com/shopspring/decimal"

// DefaultAlertThreshold is the alert threshold percent applied when a budget
// is created without one.
const DefaultAlertThreshold = 80

// Budget is a per-category monthly spending limit. At most one budget may
// exist per (user, category, month, year); the composite unique index
// enforces that at the store so concurrent creates cannot both slip past the
// service-level check. The spent amount is never stored - it is derived from
// expenses on every read.
type Budget struct {
	Base
	UserID         uint            `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"user_id"`
	Category       Category        `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"category"`
	LimitAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"limit_amount"`
	Month          int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"month"`
	Year           int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"year"`
	AlertThreshold int             `gorm:"not null;default:80" json:"alert_threshold"`
}
