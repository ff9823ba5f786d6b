package tokopedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
)

func shopItem(id, productID, productName string, reply *string) ShopReviewItem {
	item := ShopReviewItem{
		ID:           id,
		Rating:       5,
		ReviewText:   "mantap",
		ReviewerID:   "u-" + id,
		ReviewerName: "reviewer " + id,
		ReplyText:    reply,
	}
	item.Product.ProductID = productID
	item.Product.ProductName = productName
	return item
}

func TestFlattenShopPage_BroadcastsShopName(t *testing.T) {
	reply := "terima kasih"
	page := &ShopReviewPage{
		ShopName: "Acme",
		List: []ShopReviewItem{
			shopItem("r1", "p1", "Widget", &reply),
			shopItem("r2", "p2", "Gadget", nil),
		},
	}

	records := FlattenShopPage(page)

	require.Len(t, records, 2, "one record per raw item")
	for _, rec := range records {
		assert.Equal(t, "Acme", rec.ShopName)
	}
	// product identity varies per item within one shop page
	assert.Equal(t, "p1", records[0].ProductID)
	assert.Equal(t, "Widget", records[0].ProductName)
	assert.Equal(t, "p2", records[1].ProductID)
	require.NotNil(t, records[0].ReplyText)
	assert.Equal(t, "terima kasih", *records[0].ReplyText)
	assert.Nil(t, records[1].ReplyText)
}

func TestFlattenShopPage_EmptyListYieldsNoRecords(t *testing.T) {
	records := FlattenShopPage(&ShopReviewPage{ShopName: "Acme"})
	assert.Empty(t, records)
}

func productItem(id string, withReply bool) ProductReviewItem {
	item := ProductReviewItem{
		ID:            id,
		Message:       "barang bagus",
		ProductRating: 4,
	}
	item.User.UserID = "u-" + id
	item.User.FullName = "buyer " + id
	if withReply {
		item.ReviewResponse = &struct {
			Message string `json:"message"`
		}{Message: "makasih"}
	}
	return item
}

func TestFlattenProductPage_NoReplyStaysNil(t *testing.T) {
	page := &ProductReviewPage{
		ProductID: "p9",
		List:      []ProductReviewItem{productItem("f1", false), productItem("f2", true)},
		Shop:      ProductReviewShop{ShopID: "s1", Name: "Acme"},
	}

	records := FlattenProductPage(page, nil)

	require.Len(t, records, 2)
	assert.Nil(t, records[0].ReplyText, "absent reviewResponse must flatten to nil, not empty string")
	require.NotNil(t, records[1].ReplyText)
	assert.Equal(t, "makasih", *records[1].ReplyText)
}

func TestFlattenProductPage_PageScalarsWithoutSummary(t *testing.T) {
	page := &ProductReviewPage{
		ProductID: "p9",
		List:      []ProductReviewItem{productItem("f1", false)},
		Shop:      ProductReviewShop{Name: "Acme"},
	}

	records := FlattenProductPage(page, nil)

	require.Len(t, records, 1)
	assert.Equal(t, "p9", records[0].ProductID)
	assert.Equal(t, "Acme", records[0].ShopName)
	// product mode alone has no search context
	assert.Empty(t, records[0].ProductName)
	assert.Empty(t, records[0].Location)
	assert.Zero(t, records[0].Price)
	assert.Zero(t, records[0].Overall)
	assert.Zero(t, records[0].Total)
}

func TestFlattenProductPage_BroadcastsSummary(t *testing.T) {
	page := &ProductReviewPage{
		ProductID: "p9",
		List:      []ProductReviewItem{productItem("f1", false), productItem("f2", true), productItem("f3", false)},
		Shop:      ProductReviewShop{Name: "Acme"},
	}
	summary := &models.ProductSummary{
		ID:       "p9",
		Name:     "Deluxe Widget",
		Location: "Jakarta Barat",
		Price:    125000,
		Overall:  4.8,
		Total:    321,
	}

	records := FlattenProductPage(page, summary)

	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, "Deluxe Widget", rec.ProductName)
		assert.Equal(t, "Jakarta Barat", rec.Location)
		assert.Equal(t, int64(125000), rec.Price)
		assert.Equal(t, 4.8, rec.Overall)
		assert.Equal(t, 321, rec.Total)
	}
}

func TestSummaries_PreservesSearchOrder(t *testing.T) {
	page := &CategorySearchPage{Count: 3}
	for _, id := range []string{"p3", "p1", "p2"} {
		product := SearchProduct{ID: id, Name: "product " + id, PriceInt: 1000, Rating: 4.5, CountReview: 7}
		product.Shop.Location = "Bandung"
		page.Products = append(page.Products, product)
	}

	summaries := Summaries(page)

	require.Len(t, summaries, 3)
	assert.Equal(t, "p3", summaries[0].ID)
	assert.Equal(t, "p1", summaries[1].ID)
	assert.Equal(t, "p2", summaries[2].ID)
	assert.Equal(t, "Bandung", summaries[0].Location)
}
