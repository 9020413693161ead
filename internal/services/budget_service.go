package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
)

// budgetService owns the budget lifecycle: validation, the one-budget-per
// (user, category, month, year) invariant, ownership checks, and the derived
// spent amount composed from the aggregation service.
type budgetService struct {
	db         *gorm.DB
	aggregator AggregationServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, aggregator AggregationServicer) BudgetServicer {
	return &budgetService{db: db, aggregator: aggregator}
}

// validateBudgetInput checks the request fields shared by create and update.
func validateBudgetInput(category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) error {
	if !category.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown expense category")
	}
	if !limit.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Limit amount must be greater than 0")
	}
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}
	if year < 2000 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Year must be greater than or equal to 2000")
	}
	if alertThreshold != nil && (*alertThreshold < 0 || *alertThreshold > 100) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Alert threshold must be between 0 and 100")
	}
	return nil
}

// CreateBudget creates a budget for a category and period. The alert
// threshold defaults to 80 when omitted.
func (s *budgetService) CreateBudget(userID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*BudgetStatus, error) {
	if err := validateBudgetInput(category, limit, month, year, alertThreshold); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, category, month, year).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicatePeriodBudget
	}

	threshold := models.DefaultAlertThreshold
	if alertThreshold != nil {
		threshold = *alertThreshold
	}

	budget := &models.Budget{
		UserID:         userID,
		Category:       category,
		LimitAmount:    limit,
		Month:          month,
		Year:           year,
		AlertThreshold: threshold,
	}

	if err := s.db.Create(budget).Error; err != nil {
		// Concurrent creates can both pass the count check; the unique index
		// on (user_id, category, month, year) catches the loser here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicatePeriodBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.statusFor(budget)
}

// GetBudgetByID returns the budget's status if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*BudgetStatus, error) {
	budget, err := s.findBudget(budgetID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(budget.UserID, userID); err != nil {
		return nil, err
	}
	return s.statusFor(budget)
}

// GetUserBudgets returns the status of every budget the user owns, in store
// order.
func (s *budgetService) GetUserBudgets(userID uint) ([]BudgetStatus, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.statusesFor(budgets)
}

// GetBudgetsByPeriod returns the status of the user's budgets for one month
// and year.
func (s *budgetService) GetBudgetsByPeriod(userID uint, month, year int) ([]BudgetStatus, error) {
	var budgets []models.Budget
	err := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.statusesFor(budgets)
}

// UpdateBudget replaces a budget's fields. When the (category, month, year)
// tuple changes, the uniqueness invariant is re-checked against other
// budgets; an update that keeps the tuple never collides with itself. An
// omitted alert threshold retains the stored one.
func (s *budgetService) UpdateBudget(userID, budgetID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*BudgetStatus, error) {
	if err := validateBudgetInput(category, limit, month, year, alertThreshold); err != nil {
		return nil, err
	}

	budget, err := s.findBudget(budgetID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(budget.UserID, userID); err != nil {
		return nil, err
	}

	if budget.Category != category || budget.Month != month || budget.Year != year {
		var count int64
		err := s.db.Model(&models.Budget{}).
			Where("user_id = ? AND category = ? AND month = ? AND year = ? AND id <> ?",
				userID, category, month, year, budget.ID).
			Count(&count).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicatePeriodBudget
		}
	}

	budget.Category = category
	budget.LimitAmount = limit
	budget.Month = month
	budget.Year = year
	if alertThreshold != nil {
		budget.AlertThreshold = *alertThreshold
	}

	if err := s.db.Save(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicatePeriodBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.statusFor(budget)
}

// DeleteBudget removes a budget. Matching expenses are untouched - they
// simply become unbudgeted.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	budget, err := s.findBudget(budgetID)
	if err != nil {
		return err
	}
	if err := ensureOwner(budget.UserID, userID); err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) findBudget(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// statusFor derives the spent amount for the budget's period and wraps the
// budget fields into a status.
func (s *budgetService) statusFor(budget *models.Budget) (*BudgetStatus, error) {
	start, end := monthPeriod(budget.Month, budget.Year)
	spent, err := s.aggregator.TotalInRangeForCategory(budget.UserID, budget.Category, start, end)
	if err != nil {
		return nil, err
	}

	return &BudgetStatus{
		ID:             budget.ID,
		Category:       budget.Category,
		LimitAmount:    budget.LimitAmount,
		SpentAmount:    spent,
		Month:          budget.Month,
		Year:           budget.Year,
		AlertThreshold: budget.AlertThreshold,
		CreatedAt:      budget.CreatedAt,
		UpdatedAt:      budget.UpdatedAt,
	}, nil
}

func (s *budgetService) statusesFor(budgets []models.Budget) ([]BudgetStatus, error) {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for i := range budgets {
		status, err := s.statusFor(&budgets[i])
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}
