package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "personalfinance/internal/errors"
	"personalfinance/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertSummary checks a summary's totals and that its balance is derived
// from them.
func AssertSummary(t *testing.T, summary *models.AccountSummary, income, expenses string) {
	t.Helper()

	if summary == nil {
		t.Fatal("expected summary, got nil")
	}
	wantIncome := decimal.RequireFromString(income)
	wantExpenses := decimal.RequireFromString(expenses)

	if !summary.TotalIncome.Equal(wantIncome) {
		t.Errorf("expected total income %s, got %s", wantIncome, summary.TotalIncome)
	}
	if !summary.TotalExpenses.Equal(wantExpenses) {
		t.Errorf("expected total expenses %s, got %s", wantExpenses, summary.TotalExpenses)
	}
	if want := wantIncome.Sub(wantExpenses); !summary.Balance.Equal(want) {
		t.Errorf("expected balance %s, got %s", want, summary.Balance)
	}
}
