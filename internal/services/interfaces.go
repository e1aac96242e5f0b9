package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// maxAmount is the largest amount a numeric(20,2) column holds.
var maxAmount = decimal.RequireFromString("999999999999999999.99")

// TransactionInput carries the replaceable fields of a transaction.
type TransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
}

// Validate checks that every field is present and well formed, trimming
// surrounding whitespace from the text fields and normalizing the date to UTC.
func (in *TransactionInput) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Date = in.Date.UTC()

	if !in.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most two decimal places")
	}
	if in.Amount.GreaterThan(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is too large")
	}
	if in.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if in.Category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if in.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if !in.Type.IsValid() {
		return apperrors.ErrInvalidTransactionType
	}
	return nil
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionServicer defines the transaction lifecycle. Every mutation
// leaves the owner's AccountSummary consistent with their transactions.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, *models.AccountSummary, error)
	DeleteTransaction(userID, transactionID string) error
}

// SummaryServicer maintains the per-user AccountSummary.
//
// Methods ending in Tx expect to run inside InUserScope for the same user.
type SummaryServicer interface {
	// InUserScope runs fn in a database transaction while holding the
	// user's lock. The transaction is rolled back if fn returns an error.
	InUserScope(userID string, fn func(tx *gorm.DB) error) error

	GetSummary(userID string) (*models.AccountSummary, error)
	FindSummary(userID string) (*models.AccountSummary, error)
	Recompute(userID string) (*models.AccountSummary, error)

	RecomputeTx(tx *gorm.DB, userID string) (*models.AccountSummary, error)
	LoadForUpdateTx(tx *gorm.DB, userID string) (*models.AccountSummary, error)
	SaveTx(tx *gorm.DB, summary *models.AccountSummary) error
}

// BudgetSuggestion is the Budget Advisor's derived recommendation.
type BudgetSuggestion struct {
	TotalIncome             decimal.Decimal `json:"total_income"`
	TotalExpenses           decimal.Decimal `json:"total_expenses"`
	RemainingBalance        string          `json:"remaining_balance"`
	SuggestedSavings        string          `json:"suggested_savings"`
	HighestSpendingCategory string          `json:"highest_spending_category,omitempty"`
	Suggestion              string          `json:"suggestion"`
	InvestmentAdvice        string          `json:"investment_advice"`
}

// BudgetServicer defines the contract for the budget advisor.
type BudgetServicer interface {
	GetSuggestion(userID string) (*BudgetSuggestion, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
