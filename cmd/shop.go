package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

var shopCmd = &cobra.Command{
	Use:   "shop [shop-id]",
	Short: "Harvest all reviews left for a shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShop,
}

func init() {
	shopCmd.Flags().Int("pages", 1, "Pages to fetch at most (200 reviews/page)")
	shopCmd.Flags().String("format", "csv", "Output format: csv, table")
	rootCmd.AddCommand(shopCmd)
}

func runShop(cmd *cobra.Command, args []string) error {
	shopID := args[0]
	pages, _ := cmd.Flags().GetInt("pages")
	format, _ := cmd.Flags().GetString("format")

	harvester, _, err := setupHarvester(cmd.Context())
	if err != nil {
		return err
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Harvesting reviews for shop %s...", shopID))
	ctx := ui.WithProgress(cmd.Context(), spin.Update)
	ds, report, harvestErr := harvester.HarvestShop(ctx, shopID, pages)
	spin.Stop()

	path := filepath.Join(cfg.OutputDir, "shop", shopID+".csv")
	return finishRun(ds, report, harvestErr, path, format)
}
