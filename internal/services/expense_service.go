package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/logger"
	"spendtrack/internal/models"
	"spendtrack/internal/pagination"
)

// expenseService handles expense-related business logic. Every create or
// update ends with a best-effort budget limit check for the expense's
// category and month.
type expenseService struct {
	db           *gorm.DB
	aggregator   AggregationServicer
	limitChecker LimitServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, aggregator AggregationServicer, limitChecker LimitServicer) ExpenseServicer {
	return &expenseService{db: db, aggregator: aggregator, limitChecker: limitChecker}
}

func validateExpenseInput(description string, amount decimal.Decimal, category models.Category) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	}
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than 0")
	}
	if !category.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown expense category")
	}
	return nil
}

// CreateExpense records a new expense and then checks the affected
// category/period against its budget.
func (s *expenseService) CreateExpense(userID uint, description string, amount decimal.Decimal, date time.Time, category models.Category, notes string) (*models.Expense, error) {
	if err := validateExpenseInput(description, amount, category); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        dateOf(date),
		Category:    category,
		Notes:       notes,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.checkLimit(userID, expense)

	return expense, nil
}

// GetExpenseByID returns an expense if it belongs to the user.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	expense, err := s.findExpense(expenseID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(expense.UserID, userID); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetUserExpenses returns a page of the user's expenses, newest date first.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpensesByCategory returns the user's expenses for one category in
// store order.
func (s *expenseService) GetExpensesByCategory(userID uint, category models.Category) ([]models.Expense, error) {
	if !category.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown expense category")
	}

	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND category = ?", userID, category).Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetExpensesByDateRange returns the user's expenses with a date in
// [start, end], in store order.
func (s *expenseService) GetExpensesByDateRange(userID uint, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// UpdateExpense replaces an expense's fields in place, then re-checks the
// budget for the (possibly new) category and month.
func (s *expenseService) UpdateExpense(userID, expenseID uint, description string, amount decimal.Decimal, date time.Time, category models.Category, notes string) (*models.Expense, error) {
	if err := validateExpenseInput(description, amount, category); err != nil {
		return nil, err
	}

	expense, err := s.findExpense(expenseID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(expense.UserID, userID); err != nil {
		return nil, err
	}

	expense.Description = description
	expense.Amount = amount
	expense.Date = dateOf(date)
	expense.Category = category
	expense.Notes = notes

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.checkLimit(userID, expense)

	return expense, nil
}

// DeleteExpense removes an expense owned by the user.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.findExpense(expenseID)
	if err != nil {
		return err
	}
	if err := ensureOwner(expense.UserID, userID); err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTotalExpenses returns the user's total spend in [start, end].
func (s *expenseService) GetTotalExpenses(userID uint, start, end time.Time) (decimal.Decimal, error) {
	return s.aggregator.TotalInRange(userID, start, end)
}

func (s *expenseService) findExpense(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// checkLimit runs the post-write breach check. Failures are logged and
// swallowed so they can never roll back or fail the expense write.
func (s *expenseService) checkLimit(userID uint, expense *models.Expense) {
	month := int(expense.Date.Month())
	year := expense.Date.Year()
	if err := s.limitChecker.CheckLimit(userID, expense.Category, month, year); err != nil {
		logger.Get().Errorw("budget limit check failed",
			"user_id", userID,
			"category", expense.Category,
			"month", month,
			"year", year,
			"error", err.Error(),
		)
	}
}
