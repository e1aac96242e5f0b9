package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/models"
	"personalfinance/internal/services"
	"personalfinance/internal/validator"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest is the payload for creating or replacing a transaction.
// Amount accepts a JSON number or a decimal string.
type TransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" swaggertype:"string" example:"120.50"`
	Description string                 `json:"description" binding:"required,not_blank,max=500"`
	Category    string                 `json:"category" binding:"required,not_blank,max=100"`
	Date        string                 `json:"date" binding:"required,flexible_date" example:"2024-03-01"`
}

func (r *TransactionRequest) toInput() (services.TransactionInput, error) {
	date, err := validator.ParseDate(r.Date)
	if err != nil {
		return services.TransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD or RFC3339")
	}
	return services.TransactionInput{
		Type:        r.Type,
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        date,
	}, nil
}

// ListTransactionsQuery holds the optional list filters.
type ListTransactionsQuery struct {
	Type     string `form:"type" binding:"omitempty,transaction_type"`
	Category string `form:"category"`
	FromDate string `form:"from_date" binding:"omitempty,flexible_date"`
	ToDate   string `form:"to_date" binding:"omitempty,flexible_date"`
}

func (q *ListTransactionsQuery) toFilter() services.TransactionFilter {
	var filter services.TransactionFilter
	if q.Type != "" {
		txType := models.TransactionType(q.Type)
		filter.Type = &txType
	}
	if q.Category != "" {
		filter.Category = &q.Category
	}
	if t, err := validator.ParseDate(q.FromDate); err == nil {
		filter.FromDate = &t
	}
	if t, err := validator.ParseEndDate(q.ToDate); err == nil {
		filter.ToDate = &t
	}
	return filter
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

// TransactionListResponse wraps the caller's transactions.
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// UpdateTransactionResponse carries the replaced transaction and the
// owner's summary after the change.
type UpdateTransactionResponse struct {
	Transaction models.Transaction    `json:"transaction"`
	Summary     models.AccountSummary `json:"summary"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record an income or expense and update the account summary
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusCreated, TransactionResponse{Transaction: *transaction})
}

// GetUserTransactions lists the caller's transactions
// @Summary     List transactions
// @Description List the authenticated user's transactions, most recent date first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "income or expense"
// @Param       category  query string false "Category"
// @Param       from_date query string false "Earliest date (YYYY-MM-DD or RFC3339)"
// @Param       to_date   query string false "Latest date (YYYY-MM-DD or RFC3339)"
// @Success     200 {object} TransactionListResponse "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, err := h.transactionService.GetUserTransactions(userID, query.toFilter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Transactions: transactions})
}

// GetTransactionByID returns one of the caller's transactions
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: *transaction})
}

// UpdateTransaction replaces a transaction's fields
// @Summary     Update a transaction
// @Description Replace a transaction and adjust the account summary by the difference
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Replacement fields"
// @Success     200 {object} UpdateTransactionResponse "Updated transaction and summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, summary, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount.String(), "category": transaction.Category})

	c.JSON(http.StatusOK, UpdateTransactionResponse{Transaction: *transaction, Summary: *summary})
}

// DeleteTransaction removes one of the caller's transactions
// @Summary     Delete a transaction
// @Description Delete a transaction and recompute the account summary
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteTransaction, "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}
