// Package export renders transactions and monthly reports as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// TransactionHeader is the header row of WriteTransactions.
var TransactionHeader = []string{"id", "date", "type", "category", "category_name", "description", "amount"}

// text neutralises free text that a spreadsheet would evaluate as a formula.
func text(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteTransactions writes one row per transaction. Category names are
// resolved through idx; unknown ids are shown as the "other" category.
func WriteTransactions(w io.Writer, txs []models.Transaction, idx *models.CategoryIndex) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TransactionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, t := range txs {
		row := []string{
			t.ID,
			t.Date,
			string(t.Type),
			text(t.CategoryID),
			text(idx.Resolve(t.CategoryID).Name),
			text(t.Description),
			money(t.Amount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReport writes the monthly report as labelled CSV sections.
func WriteReport(w io.Writer, r *services.Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Monthly Report", r.Month},
		{},
		{"SUMMARY"},
		{"Income", money(r.Summary.Income)},
		{"Expenses", money(r.Summary.Expenses)},
		{"Net", money(r.Summary.Net)},
		{},
		{"CATEGORY BREAKDOWN"},
		{"Category", "Total", "Count", "Percentage"},
	}
	for _, c := range r.Categories.Categories {
		rows = append(rows, []string{text(c.Name), money(c.Total), strconv.Itoa(c.Count), strconv.Itoa(c.Percentage) + "%"})
	}

	rows = append(rows,
		[]string{},
		[]string{"BUDGET"},
		[]string{"Category", "Budget", "Spent", "Remaining", "Used", "Status"},
	)
	for _, b := range r.Budget.Rows {
		rows = append(rows, []string{
			text(b.Name),
			money(b.BudgetAmount),
			money(b.Spent),
			money(b.Remaining),
			strconv.Itoa(b.PercentUsed) + "%",
			string(b.Status),
		})
	}
	rows = append(rows, []string{
		"Total",
		money(r.Budget.Summary.TotalBudget),
		money(r.Budget.Summary.TotalSpent),
		money(r.Budget.Summary.TotalRemaining),
		strconv.Itoa(r.Budget.Summary.OverallPercentage) + "%",
		"",
	})

	if len(r.Insights) > 0 {
		rows = append(rows, []string{}, []string{"INSIGHTS"})
		for _, insight := range r.Insights {
			rows = append(rows, []string{insight})
		}
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
