package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Ensure the default categories exist",
		Long:  `Open the configured store, prepare its schema and insert any missing default category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			cats, err := s.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			for _, cat := range cats {
				fmt.Fprintf(c.out, "%s\t%s %s\n", cat.ID, cat.Icon, cat.Name)
			}
			fmt.Fprintf(c.out, "%d categories ready\n", len(cats))
			return nil
		},
	}
}
