package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personalfinance/internal/models"
	"personalfinance/internal/services"
)

// SummaryHandler exposes the caller's account summary.
type SummaryHandler struct {
	summaryService services.SummaryServicer
	auditService   services.AuditServicer
}

// SummaryResponse wraps an account summary.
type SummaryResponse struct {
	Summary models.AccountSummary `json:"summary"`
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer, auditService services.AuditServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, auditService: auditService}
}

// GetSummary returns the caller's running totals
// @Summary     Get account summary
// @Description Return total income, total expenses and balance, creating the summary on first access
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SummaryResponse "Account summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /account-summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: *summary})
}

// Recompute rebuilds the caller's summary from their transactions
// @Summary     Recompute account summary
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SummaryResponse "Recomputed summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /account-summary/recompute [post]
func (h *SummaryHandler) Recompute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.Recompute(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditRecomputeSummary, "account_summary", summary.ID, c.ClientIP(),
		map[string]interface{}{"balance": summary.Balance.String()})

	c.JSON(http.StatusOK, SummaryResponse{Summary: *summary})
}
