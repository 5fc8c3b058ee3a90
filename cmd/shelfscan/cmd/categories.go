package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/shelfscan/internal/catalog"
)

// categoriesCmd represents the categories command.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the product taxonomy",
	Long: `Print the product categories that scan results are mapped to,
together with the stock quantity and low-stock threshold suggested for
each one.

Examples:
  shelfscan categories
  shelfscan categories --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		cats := catalog.Categories()

		if format == outputFormatJSON {
			type entry struct {
				ID                int    `json:"id"`
				Name              string `json:"name"`
				StockQuantity     int    `json:"stock_quantity"`
				LowStockThreshold *int   `json:"low_stock_threshold"`
			}
			list := make([]entry, len(cats))
			for i, c := range cats {
				list[i] = entry{
					ID:                c.ID,
					Name:              c.Name,
					StockQuantity:     catalog.SuggestStockQuantity(c),
					LowStockThreshold: catalog.LowStockThreshold(c),
				}
			}
			data, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal categories: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTOCK\tLOW STOCK")
		for _, c := range cats {
			low := "-"
			if th := catalog.LowStockThreshold(c); th != nil {
				low = fmt.Sprintf("%d", *th)
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", c.ID, c.Name, catalog.SuggestStockQuantity(c), low)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().StringP("format", "f", "table", "output format (table, json)")
}
