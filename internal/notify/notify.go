// Package notify carries budget breach alerts out of the engine. Delivery is
// the sink's responsibility: the expense write path never waits on, retries,
// or fails because of an alert.
package notify

import (
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/models"
)

// BreachAlert describes a category/period whose spend exceeded its budget limit.
type BreachAlert struct {
	UserID     uint            `json:"user_id"`
	Category   models.Category `json:"category"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Limit      decimal.Decimal `json:"limit"`
	Total      decimal.Decimal `json:"total"`
	Severity   string          `json:"severity"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// SeverityBreach marks a hard limit breach (total > limit).
const SeverityBreach = "breach"

// NewBreachAlert builds a breach alert for the given category and period.
func NewBreachAlert(userID uint, category models.Category, month, year int, limit, total decimal.Decimal) BreachAlert {
	return BreachAlert{
		UserID:     userID,
		Category:   category,
		Month:      month,
		Year:       year,
		Limit:      limit,
		Total:      total,
		Severity:   SeverityBreach,
		OccurredAt: time.Now(),
	}
}

// Sink receives breach alerts for delivery.
type Sink interface {
	Publish(alert BreachAlert) error
}
