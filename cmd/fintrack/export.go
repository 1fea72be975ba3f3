package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/export"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

func (c *cli) exportCmd() *cobra.Command {
	var (
		output   string
		txType   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Long:  `Write transactions as CSV, newest first. --month limits the export to one month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if txType != "" && !models.TransactionType(txType).Valid() {
				return fmt.Errorf("invalid type: %s (use income or expense)", txType)
			}

			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			categories := services.NewCategoryService(s)
			filter := store.TransactionFilter{
				Month:      c.v.GetString("month"),
				Type:       models.TransactionType(txType),
				CategoryID: category,
			}
			result, err := services.NewTransactionService(s, categories).ListTransactions(ctx, filter, pagination.PageRequest{})
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}
			idx, err := categories.Index(ctx)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			var w io.Writer = c.out
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.WriteTransactions(w, result.Data, idx); err != nil {
				return err
			}
			if w != c.out {
				fmt.Fprintf(c.out, "Exported %d transactions to %s\n", len(result.Data), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&txType, "type", "", "only income or expense transactions")
	cmd.Flags().StringVar(&category, "category", "", "only transactions of this category id")
	return cmd
}
