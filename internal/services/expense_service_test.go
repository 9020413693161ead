package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/pagination"
	"spendtrack/internal/testutil"
)

func newExpenseService(t *testing.T) (ExpenseServicer, *recordingSink, *testHarness) {
	t.Helper()
	h := newTestHarness(t)
	aggregator := NewAggregationService(h.db)
	sink := &recordingSink{}
	limits := NewLimitService(h.db, aggregator, sink)
	return NewExpenseService(h.db, aggregator, limits), sink, h
}

func TestExpenseService_CreateExpense(t *testing.T) {
	svc, sink, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)

	t.Run("creates expense", func(t *testing.T) {
		expense, err := svc.CreateExpense(user.ID, "Groceries", decimal.RequireFromString("42.50"),
			testutil.Date(2025, time.March, 10), models.CategoryFoodAndDining, "weekly shop")
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Error("expected expense ID to be set")
		}
		if expense.UserID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, expense.UserID)
		}
		if !expense.Amount.Equal(decimal.RequireFromString("42.50")) {
			t.Errorf("expected amount 42.50, got %s", expense.Amount)
		}
	})

	t.Run("write triggers the limit check", func(t *testing.T) {
		testutil.CreateTestBudget(t, h.db, user.ID, models.CategoryTravel, "100.00", 5, 2025)

		_, err := svc.CreateExpense(user.ID, "Flight", decimal.RequireFromString("150.00"),
			testutil.Date(2025, time.May, 2), models.CategoryTravel, "")
		testutil.AssertNoError(t, err)

		alerts := sink.Alerts()
		if len(alerts) != 1 {
			t.Fatalf("expected 1 breach alert, got %d", len(alerts))
		}
		if alerts[0].Category != models.CategoryTravel {
			t.Errorf("expected TRAVEL alert, got %s", alerts[0].Category)
		}
	})

	t.Run("stores the calendar date at midnight UTC", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, h.db)

		expense, err := svc.CreateExpense(owner.ID, "Late dinner", decimal.RequireFromString("18.00"),
			time.Date(2025, time.March, 31, 18, 0, 0, 0, time.UTC), models.CategoryFoodAndDining, "")
		testutil.AssertNoError(t, err)

		if !expense.Date.Equal(testutil.Date(2025, time.March, 31)) {
			t.Errorf("expected date 2025-03-31T00:00:00Z, got %s", expense.Date)
		}

		total, err := svc.GetTotalExpenses(owner.ID, testutil.Date(2025, time.March, 1), testutil.Date(2025, time.March, 31))
		testutil.AssertNoError(t, err)
		if !total.Equal(decimal.RequireFromString("18.00")) {
			t.Errorf("expected March total 18.00, got %s", total)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name        string
			description string
			amount      string
			category    models.Category
		}{
			{"blank description", "   ", "10.00", models.CategoryFoodAndDining},
			{"zero amount", "Lunch", "0", models.CategoryFoodAndDining},
			{"negative amount", "Lunch", "-5.00", models.CategoryFoodAndDining},
			{"unknown category", "Lunch", "10.00", "SNACKS"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.CreateExpense(user.ID, tt.description, decimal.RequireFromString(tt.amount),
					testutil.Date(2025, time.March, 10), tt.category, "")
				testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
			})
		}
	})
}

func TestExpenseService_GetExpenseByID(t *testing.T) {
	svc, _, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)
	expense := testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))

	t.Run("returns owned expense", func(t *testing.T) {
		got, err := svc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertNoError(t, err)

		if got.ID != expense.ID {
			t.Errorf("expected expense %d, got %d", expense.ID, got.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetExpenseByID(user.ID, 99999)
		testutil.AssertAppError(t, err, apperrors.ErrExpenseNotFound)
	})

	t.Run("forbidden for another user", func(t *testing.T) {
		other := testutil.CreateTestUser(t, h.db)
		_, err := svc.GetExpenseByID(other.ID, expense.ID)
		testutil.AssertAppError(t, err, apperrors.ErrForbidden)
	})
}

func TestExpenseService_GetUserExpenses(t *testing.T) {
	svc, _, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)

	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))
	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "20.00", testutil.Date(2025, time.March, 15))
	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "30.00", testutil.Date(2025, time.March, 8))

	t.Run("lists newest date first", func(t *testing.T) {
		page, err := svc.GetUserExpenses(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 3 {
			t.Fatalf("expected 3 expenses, got %d", page.TotalItems)
		}
		for i := 1; i < len(page.Data); i++ {
			if page.Data[i].Date.After(page.Data[i-1].Date) {
				t.Errorf("expenses not ordered by date descending at index %d", i)
			}
		}
	})

	t.Run("paginates", func(t *testing.T) {
		page, err := svc.GetUserExpenses(user.ID, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 1 {
			t.Errorf("expected 1 expense on page 2, got %d", len(page.Data))
		}
		if page.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", page.TotalPages)
		}
	})

	t.Run("empty for another user", func(t *testing.T) {
		other := testutil.CreateTestUser(t, h.db)
		page, err := svc.GetUserExpenses(other.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 0 {
			t.Errorf("expected no expenses, got %d", page.TotalItems)
		}
	})
}

func TestExpenseService_GetExpensesByCategory(t *testing.T) {
	svc, _, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)

	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))
	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryTravel, "200.00", testutil.Date(2025, time.March, 2))

	t.Run("filters by category", func(t *testing.T) {
		expenses, err := svc.GetExpensesByCategory(user.ID, models.CategoryTravel)
		testutil.AssertNoError(t, err)

		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		if expenses[0].Category != models.CategoryTravel {
			t.Errorf("expected TRAVEL, got %s", expenses[0].Category)
		}
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		_, err := svc.GetExpensesByCategory(user.ID, "SNACKS")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}

func TestExpenseService_GetExpensesByDateRange(t *testing.T) {
	svc, _, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)

	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))
	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "20.00", testutil.Date(2025, time.March, 31))
	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "30.00", testutil.Date(2025, time.April, 1))

	expenses, err := svc.GetExpensesByDateRange(user.ID, testutil.Date(2025, time.March, 1), testutil.Date(2025, time.March, 31))
	testutil.AssertNoError(t, err)

	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses in March, got %d", len(expenses))
	}
}

func TestExpenseService_UpdateExpense(t *testing.T) {
	svc, sink, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)
	expense := testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))

	t.Run("updates fields", func(t *testing.T) {
		got, err := svc.UpdateExpense(user.ID, expense.ID, "Dinner", decimal.RequireFromString("25.00"),
			testutil.Date(2025, time.March, 2), models.CategoryEntertainment, "team night")
		testutil.AssertNoError(t, err)

		if got.Description != "Dinner" {
			t.Errorf("expected description Dinner, got %s", got.Description)
		}
		if got.Category != models.CategoryEntertainment {
			t.Errorf("expected ENTERTAINMENT, got %s", got.Category)
		}
	})

	t.Run("update re-checks the new category", func(t *testing.T) {
		testutil.CreateTestBudget(t, h.db, user.ID, models.CategoryShopping, "20.00", 3, 2025)

		_, err := svc.UpdateExpense(user.ID, expense.ID, "Shoes", decimal.RequireFromString("25.00"),
			testutil.Date(2025, time.March, 2), models.CategoryShopping, "")
		testutil.AssertNoError(t, err)

		alerts := sink.Alerts()
		if len(alerts) != 1 {
			t.Fatalf("expected 1 breach alert after update, got %d", len(alerts))
		}
		if alerts[0].Category != models.CategoryShopping {
			t.Errorf("expected SHOPPING alert, got %s", alerts[0].Category)
		}
	})

	t.Run("forbidden for another user", func(t *testing.T) {
		other := testutil.CreateTestUser(t, h.db)
		_, err := svc.UpdateExpense(other.ID, expense.ID, "Dinner", decimal.RequireFromString("25.00"),
			testutil.Date(2025, time.March, 2), models.CategoryEntertainment, "")
		testutil.AssertAppError(t, err, apperrors.ErrForbidden)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.UpdateExpense(user.ID, 99999, "Dinner", decimal.RequireFromString("25.00"),
			testutil.Date(2025, time.March, 2), models.CategoryEntertainment, "")
		testutil.AssertAppError(t, err, apperrors.ErrExpenseNotFound)
	})

	t.Run("normalizes the date to midnight UTC", func(t *testing.T) {
		got, err := svc.UpdateExpense(user.ID, expense.ID, "Shoes", decimal.RequireFromString("25.00"),
			time.Date(2025, time.April, 30, 23, 30, 0, 0, time.UTC), models.CategoryShopping, "")
		testutil.AssertNoError(t, err)

		if !got.Date.Equal(testutil.Date(2025, time.April, 30)) {
			t.Errorf("expected date 2025-04-30T00:00:00Z, got %s", got.Date)
		}
	})
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	svc, _, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)

	t.Run("deletes owned expense", func(t *testing.T) {
		expense := testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))

		err := svc.DeleteExpense(user.ID, expense.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertAppError(t, err, apperrors.ErrExpenseNotFound)
	})

	t.Run("forbidden for another user", func(t *testing.T) {
		expense := testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.00", testutil.Date(2025, time.March, 1))
		other := testutil.CreateTestUser(t, h.db)

		err := svc.DeleteExpense(other.ID, expense.ID)
		testutil.AssertAppError(t, err, apperrors.ErrForbidden)
	})
}

func TestExpenseService_GetTotalExpenses(t *testing.T) {
	svc, _, h := newExpenseService(t)
	user := testutil.CreateTestUser(t, h.db)

	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryFoodAndDining, "10.50", testutil.Date(2025, time.March, 1))
	testutil.CreateTestExpense(t, h.db, user.ID, models.CategoryTravel, "20.25", testutil.Date(2025, time.March, 15))

	total, err := svc.GetTotalExpenses(user.ID, testutil.Date(2025, time.March, 1), testutil.Date(2025, time.March, 31))
	testutil.AssertNoError(t, err)

	if !total.Equal(decimal.RequireFromString("30.75")) {
		t.Errorf("expected total 30.75, got %s", total)
	}
}
