package services

import (
	"gorm.io/gorm"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/models"
)

// budgetService derives budget suggestions. It never writes.
type budgetService struct {
	db        *gorm.DB
	summaries SummaryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, summaries SummaryServicer) BudgetServicer {
	return &budgetService{db: db, summaries: summaries}
}

// GetSuggestion reads the user's summary and transactions and derives a
// suggestion. It returns ErrSummaryNotFound rather than creating a summary.
func (s *budgetService) GetSuggestion(userID string) (*BudgetSuggestion, error) {
	summary, err := s.summaries.FindSummary(userID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return Advise(summary, transactions), nil
}
