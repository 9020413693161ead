package services

import (
	"fmt"
	"time"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
)

// chartService renders spend visualizations from aggregation output.
type chartService struct {
	aggregator AggregationServicer
}

// NewChartService creates a new ChartServicer.
func NewChartService(aggregator AggregationServicer) ChartServicer {
	return &chartService{aggregator: aggregator}
}

// ExpensePieChart renders a pie chart of the user's spend by category over
// [start, end] as PNG bytes.
func (s *chartService) ExpensePieChart(userID uint, start, end time.Time) ([]byte, error) {
	breakdown, err := s.aggregator.CategoryBreakdown(userID, start, end)
	if err != nil {
		return nil, err
	}
	if len(breakdown) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No expenses found for this period")
	}

	var values []float64
	var categoryNames []string
	for category, amount := range breakdown {
		categoryNames = append(categoryNames, string(category))
		values = append(values, amount.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: "Expenses by Category",
		}),
		charts.LegendLabelsOptionFunc(categoryNames),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportGenerationFailed, fmt.Errorf("create chart: %w", err))
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportGenerationFailed, fmt.Errorf("render chart: %w", err))
	}

	return buf, nil
}

// ExpensesByCategory returns the raw category breakdown for the range.
func (s *chartService) ExpensesByCategory(userID uint, start, end time.Time) (map[models.Category]decimal.Decimal, error) {
	return s.aggregator.CategoryBreakdown(userID, start, end)
}
