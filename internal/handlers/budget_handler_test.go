package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/services"
)

type mockBudgetService struct {
	getSuggestionFn func(userID string) (*services.BudgetSuggestion, error)
}

func (m *mockBudgetService) GetSuggestion(userID string) (*services.BudgetSuggestion, error) {
	if m.getSuggestionFn != nil {
		return m.getSuggestionFn(userID)
	}
	return &services.BudgetSuggestion{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	r.GET("/budget-suggestion", injectUserID(testUserID), handler.GetSuggestion)
	return r
}

func TestBudgetHandler_GetSuggestion(t *testing.T) {
	t.Run("returns 200 with advice", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getSuggestionFn: func(string) (*services.BudgetSuggestion, error) {
				return &services.BudgetSuggestion{
					RemainingBalance:        "880.00",
					SuggestedSavings:        "176.00",
					HighestSpendingCategory: "food",
					Suggestion:              "You spend the most on food ($120.00).",
					InvestmentAdvice:        "Consider a high-yield savings account or small recurring deposits.",
				}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(budgetSvc))

		rec := doRequest(r, "GET", "/budget-suggestion", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["suggested_savings"] != "176.00" {
			t.Errorf("expected savings 176.00, got %v", result["suggested_savings"])
		}
		if result["highest_spending_category"] != "food" {
			t.Errorf("expected food, got %v", result["highest_spending_category"])
		}
	})

	t.Run("omits category when absent", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "GET", "/budget-suggestion", "")

		if _, ok := parseJSON(t, rec)["highest_spending_category"]; ok {
			t.Error("expected highest_spending_category to be omitted")
		}
	})

	t.Run("returns 404 without summary", func(t *testing.T) {
		budgetSvc := &mockBudgetService{
			getSuggestionFn: func(string) (*services.BudgetSuggestion, error) {
				return nil, apperrors.ErrSummaryNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(budgetSvc))

		rec := doRequest(r, "GET", "/budget-suggestion", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SUMMARY_NOT_FOUND")
	})
}
