package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
)

// aggregationService computes spend totals and per-category breakdowns over
// raw expense records. Summation happens in Go with decimal arithmetic so
// results are exact regardless of how the underlying store handles SUM.
type aggregationService struct {
	db *gorm.DB
}

// NewAggregationService creates a new AggregationServicer.
func NewAggregationService(db *gorm.DB) AggregationServicer {
	return &aggregationService{db: db}
}

// TotalInRange returns the sum of all expense amounts owned by the user with
// a date in [start, end]. No matches yields zero.
func (s *aggregationService) TotalInRange(userID uint, start, end time.Time) (decimal.Decimal, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&expenses).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return sumAmounts(expenses), nil
}

// TotalInRangeForCategory returns the sum of the user's expense amounts for
// one category with a date in [start, end]. No matches yields zero.
func (s *aggregationService) TotalInRangeForCategory(userID uint, category models.Category, start, end time.Time) (decimal.Decimal, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ? AND category = ? AND date BETWEEN ? AND ?", userID, category, start, end).
		Find(&expenses).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return sumAmounts(expenses), nil
}

// CategoryBreakdown groups the user's expenses in [start, end] by category
// and sums each group. Categories with no expenses are absent from the map.
func (s *aggregationService) CategoryBreakdown(userID uint, start, end time.Time) (map[models.Category]decimal.Decimal, error) {
	var expenses []models.Expense
	err := s.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := make(map[models.Category]decimal.Decimal)
	for i := range expenses {
		breakdown[expenses[i].Category] = breakdown[expenses[i].Category].Add(expenses[i].Amount)
	}
	return breakdown, nil
}

func sumAmounts(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total
}
