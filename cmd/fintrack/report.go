package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/analytics"
	"fintrack/internal/export"
	"fintrack/internal/services"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
)

func (c *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the monthly report",
		Long:  `Print income, expenses, spending by category, budget status and insights for one month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			categories := services.NewCategoryService(s)
			report, err := services.NewAnalyticsService(s, categories).Report(ctx, c.v.GetString("month"))
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}
			return renderReport(c.out, c.v.GetString("format"), report)
		},
	}
}

func renderReport(w io.Writer, format string, r *services.Report) error {
	switch format {
	case formatJSON:
		rounded := *r
		rounded.Summary = r.Summary.Rounded()
		rounded.Categories = r.Categories.Rounded()
		rounded.Budget = r.Budget.Rounded()
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rounded)
	case formatCSV:
		return export.WriteReport(w, r)
	default:
		return writeReportText(w, r)
	}
}

func writeReportText(w io.Writer, r *services.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Report for %s\n\n", r.Month)
	fmt.Fprintf(tw, "Income\t%s\n", analytics.FormatCurrency(r.Summary.Income))
	fmt.Fprintf(tw, "Expenses\t%s\n", analytics.FormatCurrency(r.Summary.Expenses))
	fmt.Fprintf(tw, "Net\t%s\n", analytics.FormatCurrency(r.Summary.Net))

	fmt.Fprintln(tw, "\nSpending by category")
	if len(r.Categories.Categories) == 0 {
		fmt.Fprintln(tw, "  (no expenses)")
	}
	for _, cat := range r.Categories.Categories {
		fmt.Fprintf(tw, "  %s %s\t%s\t%d%%\n", cat.Icon, cat.Name, analytics.FormatCurrency(cat.Total), cat.Percentage)
	}

	fmt.Fprintln(tw, "\nBudgets")
	if len(r.Budget.Rows) == 0 {
		fmt.Fprintln(tw, "  (no budgets)")
	}
	for _, row := range r.Budget.Rows {
		fmt.Fprintf(tw, "  %s\t%s / %s\t%d%%\t%s\n", row.Name,
			analytics.FormatCurrency(row.Spent), analytics.FormatCurrency(row.BudgetAmount),
			row.PercentUsed, row.Status)
	}

	fmt.Fprintln(tw, "\nInsights")
	if len(r.Insights) == 0 {
		fmt.Fprintln(tw, "  Not enough data yet.")
	}
	for _, insight := range r.Insights {
		fmt.Fprintf(tw, "  - %s\n", insight)
	}

	return tw.Flush()
}
