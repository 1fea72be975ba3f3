package analytics

import (
	"fmt"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// ChangeThreshold is the month-over-month expense change, in percent, that
// must be exceeded before an insight is produced.
var ChangeThreshold = decimal.NewFromInt(10)

// Insights produces plain-language observations for month (YYYY-MM):
// the expense change against the previous month, the top spending category
// and the number of over-budget categories. An empty result means there is
// not enough data yet.
func Insights(month string, txs []models.Transaction, budgets []models.Budget, idx *models.CategoryIndex) []string {
	insights := make([]string, 0, 3)

	monthTxs := InMonth(txs, month)
	if msg, ok := monthOverMonth(month, txs); ok {
		insights = append(insights, msg)
	}

	spending := ByCategory(monthTxs, idx)
	if len(spending.Categories) > 0 {
		top := spending.Categories[0]
		insights = append(insights, fmt.Sprintf(
			"Your highest spending category this month is %s with %s.",
			top.Name, FormatCurrency(top.Total)))
	}

	over := len(CompareBudgets(month, monthTxs, budgets, idx).OverBudget())
	switch {
	case over == 1:
		insights = append(insights, "You're over budget in 1 category this month.")
	case over > 1:
		insights = append(insights, fmt.Sprintf("You're over budget in %d categories this month.", over))
	}

	return insights
}

// ExpenseChange returns the percent change of expenses in month against the
// previous month. ok is false when the previous month has no expenses.
// Totals are summed in decimal so an exact 10% change stays exact.
func ExpenseChange(month string, txs []models.Transaction) (change decimal.Decimal, ok bool) {
	prev, valid := PreviousMonth(month)
	if !valid {
		return decimal.Zero, false
	}
	last := decimalExpenses(InMonth(txs, prev))
	if !last.IsPositive() {
		return decimal.Zero, false
	}
	current := decimalExpenses(InMonth(txs, month))
	return current.Sub(last).Mul(decimal.NewFromInt(100)).Div(last), true
}

func decimalExpenses(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type == models.TransactionTypeExpense {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return total
}

func monthOverMonth(month string, txs []models.Transaction) (string, bool) {
	change, ok := ExpenseChange(month, txs)
	if !ok {
		return "", false
	}
	switch {
	case change.GreaterThan(ChangeThreshold):
		return fmt.Sprintf("Your spending increased by %s%% compared to last month.", change.StringFixed(1)), true
	case change.LessThan(ChangeThreshold.Neg()):
		return fmt.Sprintf("Great job! Your spending decreased by %s%% compared to last month.", change.Abs().StringFixed(1)), true
	}
	return "", false
}
