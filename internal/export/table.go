package export

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
)

// RenderTable prints up to limit rows of the dataset as a terminal table.
func RenderTable(w io.Writer, ds *models.Dataset, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := table.Row{}
	for _, col := range ds.Columns() {
		header = append(header, col)
	}
	t.AppendHeader(header)

	records := ds.Records()
	shown := len(records)
	if limit > 0 && shown > limit {
		shown = limit
	}
	for _, rec := range records[:shown] {
		row := table.Row{}
		for _, cell := range Row(ds.Mode(), rec) {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "reviewText", WidthMax: 40},
		{Name: "replyText", WidthMax: 40},
		{Name: "productName", WidthMax: 30},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if shown < len(records) {
		fmt.Fprintf(w, "… %d more rows\n", len(records)-shown)
	}
}
