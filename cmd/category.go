package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/tokopedia"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

var categoryCmd = &cobra.Command{
	Use:   "category [category-id]",
	Short: "Harvest reviews for every product in a category",
	Long:  "Walks the category's product search page by page and fetches one page of reviews per discovered product. Run 'tokrev categories' to list category ids.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategory,
}

func init() {
	categoryCmd.Flags().Int("pages", 1, "Search pages to walk at most (40 products/page)")
	categoryCmd.Flags().String("format", "csv", "Output format: csv, table")
	rootCmd.AddCommand(categoryCmd)
}

func runCategory(cmd *cobra.Command, args []string) error {
	categoryID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("category id must be numeric, got %q", args[0])
	}
	pages, _ := cmd.Flags().GetInt("pages")
	format, _ := cmd.Flags().GetString("format")

	harvester, client, err := setupHarvester(cmd.Context())
	if err != nil {
		return err
	}

	categories, err := client.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	category, ok := tokopedia.FindCategory(categories, categoryID)
	if !ok {
		return fmt.Errorf("category %d not found in the listing", categoryID)
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Harvesting reviews for category %d (%s)...", categoryID, category.Name))
	ctx := ui.WithProgress(cmd.Context(), spin.Update)
	ds, report, harvestErr := harvester.HarvestCategory(ctx, categoryID, pages)
	spin.Stop()

	path := filepath.Join(cfg.OutputDir, "category", categoryFileName(categoryID, category.Name))
	return finishRun(ds, report, harvestErr, path, format)
}

func categoryFileName(id int, name string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '-'
		}
		return r
	}, name)
	return fmt.Sprintf("%d_%s.csv", id, safe)
}
