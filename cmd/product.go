package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

var productCmd = &cobra.Command{
	Use:   "product [product-id]",
	Short: "Harvest reviews for a single product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func init() {
	productCmd.Flags().Int("pages", 1, "Pages to fetch at most (15 reviews/page)")
	productCmd.Flags().String("format", "csv", "Output format: csv, table")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	productID := args[0]
	pages, _ := cmd.Flags().GetInt("pages")
	format, _ := cmd.Flags().GetString("format")

	harvester, _, err := setupHarvester(cmd.Context())
	if err != nil {
		return err
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Harvesting reviews for product %s...", productID))
	ctx := ui.WithProgress(cmd.Context(), spin.Update)
	ds, report, harvestErr := harvester.HarvestProduct(ctx, productID, pages)
	spin.Stop()

	path := filepath.Join(cfg.OutputDir, "product", productID+".csv")
	return finishRun(ds, report, harvestErr, path, format)
}
