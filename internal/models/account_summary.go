package models

import "github.com/shopspring/decimal"

// AccountSummary is the per-user materialized view of that user's
// transactions. Balance is cached but always TotalIncome - TotalExpenses.
type AccountSummary struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalIncome   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"total_income"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"total_expenses"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
}

// Add credits amount to the bucket for txType.
func (s *AccountSummary) Add(txType TransactionType, amount decimal.Decimal) {
	switch txType {
	case TransactionTypeIncome:
		s.TotalIncome = s.TotalIncome.Add(amount)
	case TransactionTypeExpense:
		s.TotalExpenses = s.TotalExpenses.Add(amount)
	}
}

// Remove takes amount back out of the bucket for txType.
func (s *AccountSummary) Remove(txType TransactionType, amount decimal.Decimal) {
	s.Add(txType, amount.Neg())
}

// Rebalance derives Balance from the two totals.
func (s *AccountSummary) Rebalance() {
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
}

// Replace swaps one transaction's contribution for another's. A change of
// type moves the amount between buckets.
func (s *AccountSummary) Replace(before, after *Transaction) {
	s.Remove(before.Type, before.Amount)
	s.Add(after.Type, after.Amount)
	s.Rebalance()
}

// Reset recomputes both totals from scratch over txs.
func (s *AccountSummary) Reset(txs []Transaction) {
	s.TotalIncome = decimal.Zero
	s.TotalExpenses = decimal.Zero
	for i := range txs {
		s.Add(txs[i].Type, txs[i].Amount)
	}
	s.Rebalance()
}
