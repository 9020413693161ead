package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createBudgetFn       func(userID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*services.BudgetStatus, error)
	getBudgetByIDFn      func(userID, budgetID uint) (*services.BudgetStatus, error)
	getUserBudgetsFn     func(userID uint) ([]services.BudgetStatus, error)
	getBudgetsByPeriodFn func(userID uint, month, year int) ([]services.BudgetStatus, error)
	updateBudgetFn       func(userID, budgetID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*services.BudgetStatus, error)
	deleteBudgetFn       func(userID, budgetID uint) error
}

func (m *mockBudgetService) CreateBudget(userID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*services.BudgetStatus, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, category, limit, month, year, alertThreshold)
	}
	return &services.BudgetStatus{}, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID uint) (*services.BudgetStatus, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &services.BudgetStatus{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID uint) ([]services.BudgetStatus, error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID)
	}
	return []services.BudgetStatus{}, nil
}

func (m *mockBudgetService) GetBudgetsByPeriod(userID uint, month, year int) ([]services.BudgetStatus, error) {
	if m.getBudgetsByPeriodFn != nil {
		return m.getBudgetsByPeriodFn(userID, month, year)
	}
	return []services.BudgetStatus{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID uint, category models.Category, limit decimal.Decimal, month, year int, alertThreshold *int) (*services.BudgetStatus, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, category, limit, month, year, alertThreshold)
	}
	return &services.BudgetStatus{}, nil
}

func (m *mockBudgetService) DeleteBudget(userID, budgetID uint) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(userID, budgetID)
	}
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ uint, category models.Category, limit decimal.Decimal, month, year int, _ *int) (*services.BudgetStatus, error) {
				return &services.BudgetStatus{
					ID:             1,
					Category:       category,
					LimitAmount:    limit,
					SpentAmount:    decimal.Zero,
					Month:          month,
					Year:           year,
					AlertThreshold: models.DefaultAlertThreshold,
				}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"FOOD_AND_DINING","limit_amount":"400.00","month":3,"year":2025}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["category"] != "FOOD_AND_DINING" {
			t.Errorf("expected FOOD_AND_DINING, got %v", budget["category"])
		}
		if budget["alert_threshold"].(float64) != 80 {
			t.Errorf("expected default threshold 80, got %v", budget["alert_threshold"])
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"SNACKS","limit_amount":"400.00","month":3,"year":2025}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on month out of range", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"FOOD_AND_DINING","limit_amount":"400.00","month":13,"year":2025}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate period", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(uint, models.Category, decimal.Decimal, int, int, *int) (*services.BudgetStatus, error) {
				return nil, apperrors.ErrDuplicatePeriodBudget
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"category":"FOOD_AND_DINING","limit_amount":"400.00","month":3,"year":2025}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_PERIOD_BUDGET")
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("lists all budgets without a filter", func(t *testing.T) {
		svc := &mockBudgetService{
			getUserBudgetsFn: func(uint) ([]services.BudgetStatus, error) {
				return []services.BudgetStatus{{ID: 1}, {ID: 2}}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		budgets := parseJSON(t, rec)["budgets"].([]interface{})
		if len(budgets) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(budgets))
		}
	})

	t.Run("filters by period", func(t *testing.T) {
		var gotMonth, gotYear int
		svc := &mockBudgetService{
			getBudgetsByPeriodFn: func(_ uint, month, year int) ([]services.BudgetStatus, error) {
				gotMonth, gotYear = month, year
				return []services.BudgetStatus{{ID: 1, Month: month, Year: year}}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?month=3&year=2025", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotMonth != 3 || gotYear != 2025 {
			t.Errorf("expected period 3/2025, got %d/%d", gotMonth, gotYear)
		}
	})

	t.Run("returns 400 when only month is given", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?month=3", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns budget", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetByIDFn: func(_, budgetID uint) (*services.BudgetStatus, error) {
				return &services.BudgetStatus{ID: budgetID, Category: models.CategoryTravel}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["id"].(float64) != 7 {
			t.Errorf("expected id 7, got %v", budget["id"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetByIDFn: func(_, _ uint) (*services.BudgetStatus, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns 403 for someone else's budget", func(t *testing.T) {
		svc := &mockBudgetService{
			getBudgetByIDFn: func(_, _ uint) (*services.BudgetStatus, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/7", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_UpdateBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(_, budgetID uint, category models.Category, limit decimal.Decimal, month, year int, _ *int) (*services.BudgetStatus, error) {
				return &services.BudgetStatus{ID: budgetID, Category: category, LimitAmount: limit, Month: month, Year: year}, nil
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/7",
			`{"category":"FOOD_AND_DINING","limit_amount":"500.00","month":3,"year":2025}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 when moving onto an occupied period", func(t *testing.T) {
		svc := &mockBudgetService{
			updateBudgetFn: func(uint, uint, models.Category, decimal.Decimal, int, int, *int) (*services.BudgetStatus, error) {
				return nil, apperrors.ErrDuplicatePeriodBudget
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "PUT", "/budgets/7",
			`{"category":"TRAVEL","limit_amount":"500.00","month":4,"year":2025}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_DeleteBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockBudgetService{
			deleteBudgetFn: func(_, _ uint) error {
				return apperrors.ErrBudgetNotFound
			},
		}
		handler := NewBudgetHandler(svc)
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
