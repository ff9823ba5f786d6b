package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the buyer category tree",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	_, client, err := setupHarvester(cmd.Context())
	if err != nil {
		return err
	}

	spin := ui.NewSpinner()
	spin.Start("Fetching categories...")
	categories, err := client.Categories(cmd.Context())
	spin.Stop()
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	printCategories(categories, 0)
	return nil
}

func printCategories(categories []models.Category, depth int) {
	for _, c := range categories {
		for i := 0; i < depth+1; i++ {
			fmt.Print("\t")
		}
		fmt.Printf("%d: %s\n", c.ID, c.Name)
		printCategories(c.Children, depth+1)
	}
}
