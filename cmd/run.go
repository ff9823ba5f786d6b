package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/export"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/tokopedia"
)

// finishRun persists and summarizes a harvest. A run that failed partway
// still gets its accumulated rows written, the operator decides what a
// partial dataset is worth, but the error is surfaced and the exit code
// stays non-zero.
func finishRun(ds *models.Dataset, report *tokopedia.Report, harvestErr error, path, format string) error {
	if ds.Len() == 0 && harvestErr != nil {
		return harvestErr
	}

	if err := export.WriteCSV(path, ds); err != nil {
		return err
	}

	if format == "table" {
		export.RenderTable(os.Stdout, ds, 20)
	}

	fmt.Printf("Data saved to %s (%d rows, %d pages)\n", path, report.Rows, report.Pages)
	if report.Skipped > 0 {
		fmt.Printf("Skipped %d products with failed review fetches: %s\n",
			report.Skipped, strings.Join(report.SkippedProducts, ", "))
	}

	if harvestErr != nil {
		fmt.Fprintln(os.Stderr, "Run aborted early; the saved dataset is partial.")
		return harvestErr
	}
	return nil
}
