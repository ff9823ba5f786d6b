// Package export renders an accumulated dataset: CSV files for the
// persisted output, a terminal table for previews.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
)

// WriteCSV writes the dataset to path, creating parent directories as
// needed. Column order follows the dataset's mode.
func WriteCSV(path string, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns()); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range ds.Records() {
		if err := w.Write(Row(ds.Mode(), rec)); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// Row formats one record as export cells in the mode's column order.
// A nil reply renders as an empty cell.
func Row(mode models.Mode, r models.ReviewRecord) []string {
	reply := ""
	if r.ReplyText != nil {
		reply = *r.ReplyText
	}

	if mode == models.ModeCategory {
		return []string{
			r.ID, r.ProductID, r.ProductName,
			r.Location,
			strconv.FormatInt(r.Price, 10),
			strconv.FormatFloat(r.Overall, 'f', -1, 64),
			strconv.Itoa(r.Total),
			r.ReviewerID, r.ReviewerName,
			strconv.Itoa(r.Rating),
			r.ReviewText, reply, r.ShopName,
		}
	}
	return []string{
		r.ID, r.ProductID, r.ProductName,
		r.ReviewerID, r.ReviewerName,
		strconv.Itoa(r.Rating),
		r.ReviewText, reply, r.ShopName,
	}
}
