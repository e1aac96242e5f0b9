package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personalfinance/internal/services"
)

// BudgetHandler serves budget suggestions.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetSuggestion returns savings and investment advice
// @Summary     Get budget suggestion
// @Description Derive a savings target, top spending category and investment advice from the account summary
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BudgetSuggestion "Budget suggestion"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No account summary yet"
// @Router      /budget-suggestion [get]
func (h *BudgetHandler) GetSuggestion(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	suggestion, err := h.budgetService.GetSuggestion(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
