package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/report"
)

// reportService composes aggregation output and raw expense records into
// report documents and hands them to the renderer.
type reportService struct {
	db         *gorm.DB
	aggregator AggregationServicer
	users      UserServicer
	renderer   report.Renderer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, aggregator AggregationServicer, users UserServicer, renderer report.Renderer) ReportServicer {
	return &reportService{db: db, aggregator: aggregator, users: users, renderer: renderer}
}

// BuildMonthlyReport composes the report document for one calendar month.
func (s *reportService) BuildMonthlyReport(userID uint, month, year int) (*report.Document, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}
	start, end := monthPeriod(month, year)
	title := fmt.Sprintf("Monthly Report - %d/%d", month, year)
	return s.buildReport(userID, start, end, title)
}

// BuildYearlyReport composes the report document for one calendar year.
func (s *reportService) BuildYearlyReport(userID uint, year int) (*report.Document, error) {
	start, end := yearPeriod(year)
	title := fmt.Sprintf("Yearly Report - %d", year)
	return s.buildReport(userID, start, end, title)
}

// GenerateMonthlyReport builds and renders the monthly report.
func (s *reportService) GenerateMonthlyReport(userID uint, month, year int) ([]byte, error) {
	doc, err := s.BuildMonthlyReport(userID, month, year)
	if err != nil {
		return nil, err
	}
	return s.render(doc)
}

// GenerateYearlyReport builds and renders the yearly report.
func (s *reportService) GenerateYearlyReport(userID uint, year int) ([]byte, error) {
	doc, err := s.BuildYearlyReport(userID, year)
	if err != nil {
		return nil, err
	}
	return s.render(doc)
}

// buildReport assembles the document: owner name, period, total, category
// breakdown, and the range-filtered expense list. The list keeps store order;
// only the breakdown is sorted, for stable rendering. An empty period yields
// a document with a zero total and no rows.
func (s *reportService) buildReport(userID uint, start, end time.Time, title string) (*report.Document, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.aggregator.TotalInRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.aggregator.CategoryBreakdown(userID, start, end)
	if err != nil {
		return nil, err
	}

	var expenses []models.Expense
	err = s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &report.Document{
		Title:       title,
		Username:    user.Username,
		PeriodStart: start,
		PeriodEnd:   end,
		Total:       total,
		Breakdown:   sortedBreakdown(breakdown),
		Expenses:    expenses,
	}, nil
}

func (s *reportService) render(doc *report.Document) ([]byte, error) {
	artifact, err := s.renderer.Render(doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportGenerationFailed, err)
	}
	return artifact, nil
}

func sortedBreakdown(breakdown map[models.Category]decimal.Decimal) []report.CategoryTotal {
	rows := make([]report.CategoryTotal, 0, len(breakdown))
	for category, amount := range breakdown {
		rows = append(rows, report.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}
