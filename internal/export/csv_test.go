package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
)

func strptr(s string) *string { return &s }

func TestWriteCSV_ShopMode(t *testing.T) {
	ds := models.NewDataset(models.ModeShop)
	ds.Append(
		models.ReviewRecord{
			ID: "r1", ProductID: "p1", ProductName: "Widget",
			ReviewerID: "u1", ReviewerName: "budi", Rating: 5,
			ReviewText: "mantap", ReplyText: strptr("terima kasih"), ShopName: "Acme",
		},
		models.ReviewRecord{
			ID: "r2", ProductID: "p2", ProductName: "Gadget",
			ReviewerID: "u2", ReviewerName: "sari", Rating: 3,
			ReviewText: "lumayan", ReplyText: nil, ShopName: "Acme",
		},
	)

	path := filepath.Join(t.TempDir(), "shop", "8123.csv")
	require.NoError(t, WriteCSV(path, ds))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ds.Columns(), rows[0])
	assert.Equal(t, []string{"r1", "p1", "Widget", "u1", "budi", "5", "mantap", "terima kasih", "Acme"}, rows[1])
	assert.Equal(t, "", rows[2][7], "nil reply renders as an empty cell")
}

func TestWriteCSV_CategoryModeColumns(t *testing.T) {
	ds := models.NewDataset(models.ModeCategory)
	ds.Append(models.ReviewRecord{
		ID: "f1", ProductID: "p1", ProductName: "Deluxe Widget",
		Location: "Jakarta Barat", Price: 125000, Overall: 4.8, Total: 321,
		ReviewerID: "u1", ReviewerName: "budi", Rating: 4,
		ReviewText: "oke", ShopName: "Acme",
	})

	path := filepath.Join(t.TempDir(), "category", "55_mainan.csv")
	require.NoError(t, WriteCSV(path, ds))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Len(t, rows[0], 13)
	assert.Equal(t, []string{
		"f1", "p1", "Deluxe Widget",
		"Jakarta Barat", "125000", "4.8", "321",
		"u1", "budi", "4",
		"oke", "", "Acme",
	}, rows[1])
}

func TestRow_EmptyButPresentReply(t *testing.T) {
	row := Row(models.ModeProduct, models.ReviewRecord{ID: "f1", ReplyText: strptr("")})
	assert.Equal(t, "", row[7])
}
