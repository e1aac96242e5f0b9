package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/logger"
	"personalfinance/internal/models"
)

// summaryService keeps each user's AccountSummary in step with their
// transactions.
type summaryService struct {
	db    *gorm.DB
	locks *userLocks
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db, locks: newUserLocks()}
}

func (s *summaryService) InUserScope(userID string, fn func(tx *gorm.DB) error) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	return s.db.Transaction(fn)
}

// GetSummary returns the user's summary, creating it on first access.
func (s *summaryService) GetSummary(userID string) (*models.AccountSummary, error) {
	summary, err := s.FindSummary(userID)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, apperrors.ErrSummaryNotFound) {
		return nil, err
	}

	err = s.InUserScope(userID, func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = s.LoadForUpdateTx(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// FindSummary returns the user's summary without creating one.
func (s *summaryService) FindSummary(userID string) (*models.AccountSummary, error) {
	var summary models.AccountSummary
	if err := s.db.Where("user_id = ?", userID).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSummaryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &summary, nil
}

// Recompute rebuilds the user's summary from all of their transactions.
func (s *summaryService) Recompute(userID string) (*models.AccountSummary, error) {
	var summary *models.AccountSummary
	err := s.InUserScope(userID, func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = s.RecomputeTx(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// RecomputeTx sums the user's income and expense transactions and upserts
// the summary with the result.
func (s *summaryService) RecomputeTx(tx *gorm.DB, userID string) (*models.AccountSummary, error) {
	var transactions []models.Transaction
	if err := tx.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		logger.Get().Errorw("summary recompute: failed to load transactions", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary, err := s.findLocked(tx, userID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		summary = &models.AccountSummary{UserID: userID}
	}

	summary.Reset(transactions)

	if err := s.SaveTx(tx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// LoadForUpdateTx returns the user's summary locked for update. A missing
// summary is first built from the user's current transactions.
func (s *summaryService) LoadForUpdateTx(tx *gorm.DB, userID string) (*models.AccountSummary, error) {
	summary, err := s.findLocked(tx, userID)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		return summary, nil
	}
	return s.RecomputeTx(tx, userID)
}

// SaveTx persists summary, re-deriving the balance first.
func (s *summaryService) SaveTx(tx *gorm.DB, summary *models.AccountSummary) error {
	summary.Rebalance()
	if err := tx.Save(summary).Error; err != nil {
		logger.Get().Errorw("failed to persist account summary", "user_id", summary.UserID, "error", err)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// findLocked reads the summary row with a row lock (ignored by SQLite).
// It returns nil, nil when the user has no summary yet.
func (s *summaryService) findLocked(tx *gorm.DB, userID string) (*models.AccountSummary, error) {
	var summary models.AccountSummary
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Get().Errorw("failed to load account summary", "user_id", userID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &summary, nil
}
