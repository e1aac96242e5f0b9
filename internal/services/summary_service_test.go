package services

import (
	"testing"

	"gorm.io/gorm"

	"personalfinance/internal/models"
	"personalfinance/internal/testutil"
)

func TestFindSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.FindSummary(user.ID)
	testutil.AssertAppError(t, err, "SUMMARY_NOT_FOUND")

	testutil.CreateTestSummary(t, db, user.ID, "10", "4")
	summary, err := svc.FindSummary(user.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertSummary(t, summary, "10", "4")
}

func TestGetSummary(t *testing.T) {
	t.Run("creates_zero_summary_on_first_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetSummary(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertSummary(t, summary, "0", "0")

		var count int64
		db.Model(&models.AccountSummary{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected summary to be persisted, got %d rows", count)
		}
	})

	t.Run("lazy_summary_reflects_existing_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "salary", "300")
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "food", "45.50")

		summary, err := svc.GetSummary(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertSummary(t, summary, "300", "45.50")
	})

	t.Run("existing_summary_returned_as_is", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestSummary(t, db, user.ID, "7", "2")

		summary, err := svc.GetSummary(user.ID)
		testutil.AssertNoError(t, err)
		if summary.ID != created.ID {
			t.Errorf("expected summary %s, got %s", created.ID, summary.ID)
		}
	})
}

func TestRecompute(t *testing.T) {
	t.Run("repairs_drift", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "salary", "1000")
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "food", "120")
		stale := testutil.CreateTestSummary(t, db, user.ID, "5", "500")

		summary, err := svc.Recompute(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertSummary(t, summary, "1000", "120")
		if summary.ID != stale.ID {
			t.Error("expected existing summary row to be reused")
		}
	})

	t.Run("ignores_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeIncome, "salary", "999")

		summary, err := svc.Recompute(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertSummary(t, summary, "0", "0")
	})
}

func TestInUserScopeRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSummaryService(db)
	user := testutil.CreateTestUser(t, db)

	err := svc.InUserScope(user.ID, func(tx *gorm.DB) error {
		if _, err := svc.RecomputeTx(tx, user.ID); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	if err == nil {
		t.Fatal("expected error from scope")
	}

	_, err = svc.FindSummary(user.ID)
	testutil.AssertAppError(t, err, "SUMMARY_NOT_FOUND")
}
