// Package report defines the structured report document the engine produces
// and the renderer contract that turns it into a printable artifact.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/models"
)

// CategoryTotal is one row of the per-category breakdown section.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Document is a fully composed spend report for one user and period. Only
// categories with at least one expense appear in Breakdown; Expenses holds
// the range-filtered records in store order. An empty period is a valid
// document, not an error.
type Document struct {
	Title       string           `json:"title"`
	Username    string           `json:"username"`
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	Total       decimal.Decimal  `json:"total"`
	Breakdown   []CategoryTotal  `json:"breakdown"`
	Expenses    []models.Expense `json:"expenses"`
}

// Empty reports whether the document covers a period with no expenses.
func (d *Document) Empty() bool {
	return len(d.Expenses) == 0
}

// Renderer serializes a report document into a binary artifact.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}
