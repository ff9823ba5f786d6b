package cmd

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/tokopedia"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive harvesting menu",
	Long:  "Prompt-driven loop: pick shop, product or category mode, enter an identifier and a page count, get a CSV. Bootstraps the session once and keeps it for the whole sitting.",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	harvester, client, err := setupHarvester(cmd.Context())
	if err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Println("Choose an option:")
		fmt.Println("\t1.\tBy Shop ID")
		fmt.Println("\t2.\tBy Product ID")
		fmt.Println("\t3.\tBy Category")
		fmt.Println("\t9.\tExit")

		choice, err := promptInt(in, "Enter your choice: ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Println("Invalid input. Please enter a number.")
			continue
		}

		switch choice {
		case 1:
			menuShop(cmd, harvester, in)
		case 2:
			menuProduct(cmd, harvester, in)
		case 3:
			menuCategory(cmd, harvester, client, in)
		case 9:
			return nil
		}
	}
}

func menuShop(cmd *cobra.Command, harvester *tokopedia.Harvester, in *bufio.Scanner) {
	shopID, err := promptString(in, "Enter the Shop ID: ")
	if err != nil {
		fmt.Println("Invalid input. Please enter a valid Shop ID.")
		return
	}
	pages, err := promptInt(in, "Enter the number of pages to fetch (200/page): ")
	if err != nil {
		fmt.Println("Invalid input. Please enter a valid page count.")
		return
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Harvesting reviews for shop %s...", shopID))
	ctx := ui.WithProgress(cmd.Context(), spin.Update)
	ds, report, harvestErr := harvester.HarvestShop(ctx, shopID, pages)
	spin.Stop()

	path := filepath.Join(cfg.OutputDir, "shop", shopID+".csv")
	if err := finishRun(ds, report, harvestErr, path, "csv"); err != nil {
		fmt.Println(err)
	}
}

func menuProduct(cmd *cobra.Command, harvester *tokopedia.Harvester, in *bufio.Scanner) {
	productID, err := promptString(in, "Enter the Product ID: ")
	if err != nil {
		fmt.Println("Invalid input. Please enter a valid Product ID.")
		return
	}
	pages, err := promptInt(in, "Enter the number of pages to fetch (15/page): ")
	if err != nil {
		fmt.Println("Invalid input. Please enter a valid page count.")
		return
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Harvesting reviews for product %s...", productID))
	ctx := ui.WithProgress(cmd.Context(), spin.Update)
	ds, report, harvestErr := harvester.HarvestProduct(ctx, productID, pages)
	spin.Stop()

	path := filepath.Join(cfg.OutputDir, "product", productID+".csv")
	if err := finishRun(ds, report, harvestErr, path, "csv"); err != nil {
		fmt.Println(err)
	}
}

func menuCategory(cmd *cobra.Command, harvester *tokopedia.Harvester, client *tokopedia.Client, in *bufio.Scanner) {
	categories, err := client.Categories(cmd.Context())
	if err != nil {
		fmt.Println("Failed to fetch categories:", err)
		return
	}

	fmt.Println("Categories:")
	printCategories(categories, 0)

	categoryID, err := promptInt(in, "Enter the Category ID: ")
	if err != nil {
		fmt.Println("Invalid input. Please enter a valid Category ID.")
		return
	}
	category, ok := tokopedia.FindCategory(categories, categoryID)
	if !ok {
		fmt.Printf("Category %d not found in the listing.\n", categoryID)
		return
	}
	pages, err := promptInt(in, "Enter the number of pages to fetch (40/page): ")
	if err != nil {
		fmt.Println("Invalid input. Please enter a valid page count.")
		return
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Harvesting reviews for category %d (%s)...", categoryID, category.Name))
	ctx := ui.WithProgress(cmd.Context(), spin.Update)
	ds, report, harvestErr := harvester.HarvestCategory(ctx, categoryID, pages)
	spin.Stop()

	path := filepath.Join(cfg.OutputDir, "category", categoryFileName(categoryID, category.Name))
	if err := finishRun(ds, report, harvestErr, path, "csv"); err != nil {
		fmt.Println(err)
	}
}

func promptString(in *bufio.Scanner, prompt string) (string, error) {
	fmt.Print(prompt)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	s := strings.TrimSpace(in.Text())
	if s == "" {
		return "", fmt.Errorf("empty input")
	}
	return s, nil
}

func promptInt(in *bufio.Scanner, prompt string) (int, error) {
	s, err := promptString(in, prompt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}
