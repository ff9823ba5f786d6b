package models

import "strings"

// Mode selects which harvesting entry point produced a dataset.
// It decides the exported column set: category runs carry four extra
// columns sourced from the product search result.
type Mode int

const (
	ModeShop Mode = iota
	ModeProduct
	ModeCategory
)

func (m Mode) String() string {
	switch m {
	case ModeShop:
		return "shop"
	case ModeProduct:
		return "product"
	case ModeCategory:
		return "category"
	}
	return "unknown"
}

// ReviewRecord is one flat row of output.
//
// ReplyText is a pointer so a review without a seller reply stays
// distinguishable from an empty-but-present reply; nil renders as an
// empty cell.
type ReviewRecord struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Location     string  `json:"location,omitempty"`
	Price        int64   `json:"price,omitempty"`
	Overall      float64 `json:"overall,omitempty"`
	Total        int     `json:"total,omitempty"`
	ReviewerID   string  `json:"reviewer_id"`
	ReviewerName string  `json:"reviewer_name"`
	Rating       int     `json:"rating"`
	ReviewText   string  `json:"review_text"`
	ReplyText    *string `json:"reply_text"`
	ShopName     string  `json:"shop_name"`
}

// ProductSummary is one product as returned by the category search.
// In category mode its fields are broadcast into every review record
// harvested for that product.
type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Price    int64   `json:"price"`
	Overall  float64 `json:"overall"`
	Total    int     `json:"total"`
}

// Category is a node of the buyer category tree (depth <= 2 in practice).
type Category struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Children []Category `json:"children,omitempty"`
}

// Dataset accumulates flattened records for one harvesting run.
// It is the only mutable piece of the pipeline and has a single writer:
// the harvester appends page by page, then normalizes once at the end.
type Dataset struct {
	mode    Mode
	records []ReviewRecord
}

func NewDataset(mode Mode) *Dataset {
	return &Dataset{mode: mode}
}

func (d *Dataset) Mode() Mode { return d.mode }

func (d *Dataset) Len() int { return len(d.records) }

// Append adds records in arrival order. Ordering across pages and across
// products within a category page is preserved; no deduplication happens.
func (d *Dataset) Append(records ...ReviewRecord) {
	d.records = append(d.records, records...)
}

// Records returns the accumulated rows in insertion order.
func (d *Dataset) Records() []ReviewRecord {
	return d.records
}

var textScrubber = strings.NewReplacer("\n", " ", "\r", " ")

// Normalize replaces embedded newlines and carriage returns in review and
// reply text with single spaces. It runs once over the whole dataset after
// accumulation. A nil reply stays nil. Idempotent.
func (d *Dataset) Normalize() {
	for i := range d.records {
		d.records[i].ReviewText = textScrubber.Replace(d.records[i].ReviewText)
		if d.records[i].ReplyText != nil {
			scrubbed := textScrubber.Replace(*d.records[i].ReplyText)
			d.records[i].ReplyText = &scrubbed
		}
	}
}

// Columns returns the export header for the dataset's mode.
func (d *Dataset) Columns() []string {
	if d.mode == ModeCategory {
		return []string{
			"id", "productID", "productName",
			"location", "price", "overall", "total",
			"reviewerID", "reviewerName", "rating",
			"reviewText", "replyText", "shopName",
		}
	}
	return []string{
		"id", "productID", "productName",
		"reviewerID", "reviewerName", "rating",
		"reviewText", "replyText", "shopName",
	}
}
