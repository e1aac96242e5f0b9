package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/models"
)

// transactionService handles the transaction lifecycle.
type transactionService struct {
	db        *gorm.DB
	summaries SummaryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, summaries SummaryServicer) TransactionServicer {
	return &transactionService{
		db:        db,
		summaries: summaries,
	}
}

// CreateTransaction records a new transaction and recomputes the owner's summary.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Date:        input.Date,
	}

	err := s.summaries.InUserScope(userID, func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.summaries.RecomputeTx(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions lists the user's transactions, most recent date first.
func (s *transactionService) GetUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	q = applyTransactionFilters(q, filter)

	transactions := []models.Transaction{}
	if err := q.Order("date DESC").Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	return findOwnedTransaction(s.db, userID, transactionID)
}

// UpdateTransaction replaces a transaction's fields and moves its
// contribution in the owner's summary from the old values to the new ones.
func (s *transactionService) UpdateTransaction(userID, transactionID string, input TransactionInput) (*models.Transaction, *models.AccountSummary, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		transaction *models.Transaction
		summary     *models.AccountSummary
	)
	err := s.summaries.InUserScope(userID, func(tx *gorm.DB) error {
		var err error
		transaction, err = findOwnedTransaction(tx, userID, transactionID)
		if err != nil {
			return err
		}

		// Loaded before the row changes, so a missing summary is built
		// from the pre-update state.
		summary, err = s.summaries.LoadForUpdateTx(tx, userID)
		if err != nil {
			return err
		}

		before := *transaction
		transaction.Type = input.Type
		transaction.Amount = input.Amount
		transaction.Description = input.Description
		transaction.Category = input.Category
		transaction.Date = input.Date

		summary.Replace(&before, transaction)

		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.summaries.SaveTx(tx, summary)
	})
	if err != nil {
		return nil, nil, err
	}
	return transaction, summary, nil
}

// DeleteTransaction removes one of the user's transactions and recomputes
// their summary. Transactions owned by someone else are reported as not found.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	if _, err := uuid.Parse(transactionID); err != nil {
		return apperrors.ErrTransactionNotFound
	}

	return s.summaries.InUserScope(userID, func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrTransactionNotFound
		}

		_, err := s.summaries.RecomputeTx(tx, userID)
		return err
	})
}

func findOwnedTransaction(db *gorm.DB, userID, transactionID string) (*models.Transaction, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, apperrors.ErrTransactionNotFound
	}

	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}
