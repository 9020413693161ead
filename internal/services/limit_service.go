package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/notify"
)

// limitService checks a category/period against its budget after every
// expense write. It reads budgets and spend totals only; it never mutates
// domain state, and a failing alert sink never fails the expense write.
type limitService struct {
	db         *gorm.DB
	aggregator AggregationServicer
	sink       notify.Sink
}

// NewLimitService creates a new LimitServicer publishing to the given sink.
func NewLimitService(db *gorm.DB, aggregator AggregationServicer, sink notify.Sink) LimitServicer {
	return &limitService{db: db, aggregator: aggregator, sink: sink}
}

// CheckLimit looks up the budget for (user, category, month, year) and emits
// a breach alert when the period's spend strictly exceeds the limit. An
// unbudgeted category is a no-op. The stored alert threshold percent is not
// consulted; only a hard limit breach fires.
func (s *limitService) CheckLimit(userID uint, category models.Category, month, year int) error {
	var budget models.Budget
	err := s.db.
		Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, category, month, year).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // no budget set for this category
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start, end := monthPeriod(budget.Month, budget.Year)
	total, err := s.aggregator.TotalInRangeForCategory(userID, category, start, end)
	if err != nil {
		return err
	}

	if total.GreaterThan(budget.LimitAmount) {
		alert := notify.NewBreachAlert(userID, category, month, year, budget.LimitAmount, total)
		if err := s.sink.Publish(alert); err != nil {
			// Best effort: the breach was detected, delivery is the sink's
			// problem. Surface it to the caller's log and move on.
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return nil
}
