package services

import (
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/models"
	"spendtrack/internal/pagination"
	"spendtrack/internal/report"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AggregationServicer defines the read-only spend aggregation contract. All
// sums are exact fixed-point decimal additions over the owner's expense
// records; an empty range yields zero, never an error.
type AggregationServicer interface {
	TotalInRange(userID uint, start, end time.Time) (decimal.Decimal, error)
	TotalInRangeForCategory(userID uint, category models.Category, start, end time.Time) (decimal.Decimal, error)
	CategoryBreakdown(userID uint, start, end time.Time) (map[models.Category]decimal.Decimal, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, description string, amount decimal.Decimal, date time.Time, category models.Category, notes string) (*models.Expense, error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpensesByCategory(userID uint, category models.Category) ([]models.Expense, error)
	GetExpensesByDateRange(userID uint, start, end time.Time) ([]models.Expense, error)
	UpdateExpense(userID, expenseID uint, description string, amount decimal.Decimal, date time.Time, category models.Category, notes string) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetTotalExpenses(userID uint, start, end time.Time) (decimal.Decimal, error)
}

// BudgetStatus is a budget together with its derived spend for the budget's
// period. SpentAmount is recomputed on every read and never stored.
type BudgetStatus struct {
	ID             uint            `json:"id"`
	Category       models.Category `json:"category"`
	LimitAmount    decimal.Decimal `json:"limit_amount"`
	SpentAmount    decimal.Decimal `json:"spent_amount"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	AlertThreshold int             `json:"alert_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BudgetServicer defines the contract for budget lifecycle and status.
type BudgetServicer interface {
	CreateBudget(userID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*BudgetStatus, error)
	GetBudgetByID(userID, budgetID uint) (*BudgetStatus, error)
	GetUserBudgets(userID uint) ([]BudgetStatus, error)
	GetBudgetsByPeriod(userID uint, month, year int) ([]BudgetStatus, error)
	UpdateBudget(userID, budgetID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*BudgetStatus, error)
	DeleteBudget(userID, budgetID uint) error
}

// LimitServicer checks a category/period against its budget after an expense
// write and emits a breach alert when the limit is exceeded.
type LimitServicer interface {
	CheckLimit(userID uint, category models.Category, month, year int) error
}

// ReportServicer composes and renders spend reports.
type ReportServicer interface {
	BuildMonthlyReport(userID uint, month, year int) (*report.Document, error)
	BuildYearlyReport(userID uint, year int) (*report.Document, error)
	GenerateMonthlyReport(userID uint, month, year int) ([]byte, error)
	GenerateYearlyReport(userID uint, year int) ([]byte, error)
}

// ChartServicer renders spend visualizations.
type ChartServicer interface {
	ExpensePieChart(userID uint, start, end time.Time) ([]byte, error)
	ExpensesByCategory(userID uint, start, end time.Time) (map[models.Category]decimal.Decimal, error)
}
