package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/analytics"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

func TestWriteTransactions(t *testing.T) {
	idx := models.NewCategoryIndex(models.DefaultCategories())
	txs := []models.Transaction{
		{Base: models.Base{ID: "a"}, Amount: 12.5, Date: "2024-02-10", Description: "Lunch, with friends", CategoryID: "food", Type: models.TransactionTypeExpense},
		{Base: models.Base{ID: "b"}, Amount: 0.1 + 0.2, Date: "2024-02-11", Description: "Refund", CategoryID: "pets", Type: models.TransactionTypeIncome},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs, idx))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, TransactionHeader, records[0])
	assert.Equal(t, []string{"a", "2024-02-10", "expense", "food", "Food & Dining", "Lunch, with friends", "12.50"}, records[1])
	assert.Equal(t, "Other", records[2][4])
	assert.Equal(t, "0.30", records[2][6])
}

func TestWriteTransactions_FormulaCells(t *testing.T) {
	idx := models.NewCategoryIndex(models.DefaultCategories())
	descriptions := []string{"=HYPERLINK(\"http://x\")", "+1", "-2+3", "@SUM(A1)", "\t=1"}
	var txs []models.Transaction
	for _, d := range descriptions {
		txs = append(txs, models.Transaction{Amount: 1, Date: "2024-02-10", Description: d, CategoryID: "food", Type: models.TransactionTypeExpense})
	}
	txs = append(txs, models.Transaction{Amount: 1, Date: "2024-02-10", Description: "Taxi - airport", CategoryID: "transportation", Type: models.TransactionTypeExpense})

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs, idx))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(txs)+1)
	for i, d := range descriptions {
		assert.Equal(t, "'"+d, records[i+1][5])
	}
	assert.Equal(t, "Taxi - airport", records[len(txs)][5])
}

func TestWriteTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil, models.NewCategoryIndex(nil)))
	assert.Equal(t, strings.Join(TransactionHeader, ",")+"\n", buf.String())
}

func TestWriteReport(t *testing.T) {
	report := &services.Report{
		Month:   "2024-02",
		Summary: analytics.MonthlyAggregate{Month: "2024-02", Income: 1000, Expenses: 120, Net: 880},
		Categories: analytics.CategoryBreakdown{
			Categories:    []analytics.CategoryAggregate{{CategoryID: "food", Name: "Food & Dining", Total: 120, Count: 2, Percentage: 100}},
			TotalExpenses: 120,
		},
		Budget: analytics.BudgetComparison{
			Month: "2024-02",
			Rows: []analytics.BudgetRow{{
				CategoryID: "food", Name: "Food & Dining", BudgetAmount: 100, Spent: 120,
				Remaining: -20, PercentUsed: 120, Status: analytics.BudgetStatusOver,
			}},
			Summary: analytics.BudgetSummary{TotalBudget: 100, TotalSpent: 120, TotalRemaining: -20, OverallPercentage: 120},
		},
		Insights: []string{"You're over budget in 1 category this month."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Monthly Report,2024-02\n")
	assert.Contains(t, out, "Net,880.00\n")
	assert.Contains(t, out, "Food & Dining,120.00,2,100%\n")
	assert.Contains(t, out, "Food & Dining,100.00,120.00,-20.00,120%,over\n")
	assert.Contains(t, out, "INSIGHTS\nYou're over budget in 1 category this month.\n")
}
