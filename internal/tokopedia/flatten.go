package tokopedia

import (
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
)

// FlattenShopPage turns one shop review page into flat records. Product
// identity comes from each item (products vary within one shop page);
// the shop name is the page-level scalar broadcast onto every record.
func FlattenShopPage(p *ShopReviewPage) []models.ReviewRecord {
	records := make([]models.ReviewRecord, 0, len(p.List))
	for _, item := range p.List {
		records = append(records, models.ReviewRecord{
			ID:           item.ID,
			ProductID:    item.Product.ProductID,
			ProductName:  item.Product.ProductName,
			ReviewerID:   item.ReviewerID,
			ReviewerName: item.ReviewerName,
			Rating:       item.Rating,
			ReviewText:   item.ReviewText,
			ReplyText:    item.ReplyText,
			ShopName:     p.ShopName,
		})
	}
	return records
}

// FlattenProductPage turns one product review page into flat records.
// Product ID and shop name are page-level scalars. The product name and
// the four category aggregates exist only on the search result, so they
// arrive through summary; nil outside category mode leaves them empty.
func FlattenProductPage(p *ProductReviewPage, summary *models.ProductSummary) []models.ReviewRecord {
	records := make([]models.ReviewRecord, 0, len(p.List))
	for _, item := range p.List {
		rec := models.ReviewRecord{
			ID:           item.ID,
			ProductID:    p.ProductID,
			ReviewerID:   item.User.UserID,
			ReviewerName: item.User.FullName,
			Rating:       item.ProductRating,
			ReviewText:   item.Message,
			ShopName:     p.Shop.Name,
		}
		if item.ReviewResponse != nil {
			reply := item.ReviewResponse.Message
			rec.ReplyText = &reply
		}
		if summary != nil {
			rec.ProductName = summary.Name
			rec.Location = summary.Location
			rec.Price = summary.Price
			rec.Overall = summary.Overall
			rec.Total = summary.Total
		}
		records = append(records, rec)
	}
	return records
}

// Summaries extracts the per-product broadcast context from one category
// search page, in search-result order.
func Summaries(p *CategorySearchPage) []models.ProductSummary {
	summaries := make([]models.ProductSummary, 0, len(p.Products))
	for _, product := range p.Products {
		summaries = append(summaries, models.ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			Location: product.Shop.Location,
			Price:    product.PriceInt,
			Overall:  product.Rating,
			Total:    product.CountReview,
		})
	}
	return summaries
}
