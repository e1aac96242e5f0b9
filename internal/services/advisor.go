package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"personalfinance/internal/models"
)

const (
	insufficientDataSuggestion = "Not enough data to generate a suggestion yet. Start by recording your income and expenses."
	noExpensesCategory         = "none"

	adviceDiversified   = "Consider diversified investments such as stocks, ETFs, or long-term funds."
	adviceMutualFunds   = "Consider mutual funds or low-risk bonds."
	adviceHighYield     = "Consider a high-yield savings account or small recurring deposits."
	adviceEmergencyFund = "Focus on building an emergency fund before investing."
)

var (
	savingsRate = decimal.New(20, -2)

	// savingsReminderFloor is the amount above which an explicit savings
	// target is added to the suggestion.
	savingsReminderFloor = decimal.NewFromInt(50)

	// investmentTiers are checked in order; the first matching floor wins.
	investmentTiers = []struct {
		floor  decimal.Decimal
		advice string
	}{
		{decimal.NewFromInt(500), adviceDiversified},
		{decimal.NewFromInt(200), adviceMutualFunds},
		{decimal.NewFromInt(100), adviceHighYield},
	}
)

// Advise derives a budget suggestion from a summary and the user's
// transactions, which must be in insertion order: when two categories tie
// for the highest spend, the one seen first wins.
func Advise(summary *models.AccountSummary, transactions []models.Transaction) *BudgetSuggestion {
	savings := summary.Balance.Mul(savingsRate)

	result := &BudgetSuggestion{
		TotalIncome:      summary.TotalIncome,
		TotalExpenses:    summary.TotalExpenses,
		RemainingBalance: summary.Balance.StringFixed(2),
		SuggestedSavings: savings.StringFixed(2),
		InvestmentAdvice: investmentAdvice(savings),
	}

	if len(transactions) == 0 {
		result.Suggestion = insufficientDataSuggestion
		return result
	}

	var suggestion string
	if top, ok := highestExpenseCategory(transactions); ok {
		result.HighestSpendingCategory = top.name
		suggestion = fmt.Sprintf("You spend the most on %s ($%s).", top.name, top.total.StringFixed(2))
	} else {
		result.HighestSpendingCategory = noExpensesCategory
		suggestion = "You have not recorded any expenses yet."
	}

	switch {
	case summary.Balance.IsNegative():
		suggestion += " Warning: your expenses exceed your income."
	case savings.GreaterThan(savingsReminderFloor):
		suggestion += fmt.Sprintf(" Consider saving at least $%s this period.", savings.StringFixed(2))
	}

	result.Suggestion = suggestion
	return result
}

func investmentAdvice(savings decimal.Decimal) string {
	for _, tier := range investmentTiers {
		if savings.GreaterThanOrEqual(tier.floor) {
			return tier.advice
		}
	}
	return adviceEmergencyFund
}

type categoryTotal struct {
	name  string
	total decimal.Decimal
}

// categoryTotals accumulates per-category sums in first-seen order.
type categoryTotals struct {
	index map[string]int
	items []categoryTotal
}

func (c *categoryTotals) add(name string, amount decimal.Decimal) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.items[i].total = c.items[i].total.Add(amount)
		return
	}
	c.index[name] = len(c.items)
	c.items = append(c.items, categoryTotal{name: name, total: amount})
}

// highest returns the category with the strictly largest total.
func (c *categoryTotals) highest() (categoryTotal, bool) {
	if len(c.items) == 0 {
		return categoryTotal{}, false
	}
	best := c.items[0]
	for _, item := range c.items[1:] {
		if item.total.GreaterThan(best.total) {
			best = item
		}
	}
	return best, true
}

func highestExpenseCategory(transactions []models.Transaction) (categoryTotal, bool) {
	var totals categoryTotals
	for i := range transactions {
		if transactions[i].Type == models.TransactionTypeExpense {
			totals.add(transactions[i].Category, transactions[i].Amount)
		}
	}
	return totals.highest()
}
