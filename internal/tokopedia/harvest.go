package tokopedia

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/ui"
)

// Harvester drives page-by-page retrieval and flattening for the three
// entry modes and owns the category drill-down fan-out.
type Harvester struct {
	client        *Client
	limiter       *rate.Limiter
	maxConcurrent int
	adaptive      bool
}

// NewHarvester wires a harvester over the given client. maxConcurrent
// bounds the category fan-out; limiter (optional) paces it.
func NewHarvester(client *Client, limiter *rate.Limiter, maxConcurrent int) *Harvester {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &Harvester{
		client:        client,
		limiter:       limiter,
		maxConcurrent: maxConcurrent,
	}
}

// SetAdaptivePaging switches page iteration from the operator-supplied
// fixed count to stopping as soon as the gateway reports no next page,
// with the requested count as the ceiling. The fixed-count loop stays
// available for callers that need an exact number of calls.
func (h *Harvester) SetAdaptivePaging(on bool) {
	h.adaptive = on
}

// Report summarizes one harvesting run.
type Report struct {
	Mode            models.Mode `json:"mode"`
	Identifier      string      `json:"identifier"`
	Pages           int         `json:"pages"`
	Rows            int         `json:"rows"`
	Skipped         int         `json:"skipped,omitempty"`
	SkippedProducts []string    `json:"skipped_products,omitempty"`
}

// HarvestShop collects up to pages pages of a shop's reviews. On a page
// failure the dataset holds everything accumulated so far and the error
// reports which page broke; the caller decides whether to keep it.
func (h *Harvester) HarvestShop(ctx context.Context, shopID string, pages int) (*models.Dataset, *Report, error) {
	ds := models.NewDataset(models.ModeShop)
	report := &Report{Mode: models.ModeShop, Identifier: shopID}

	for page := 1; page <= pages; page++ {
		p, err := h.client.ShopReviews(ctx, shopID, page)
		if err != nil {
			h.finish(ds, report)
			return ds, report, fmt.Errorf("shop %s page %d: %w", shopID, page, err)
		}
		report.Pages++
		ds.Append(FlattenShopPage(p)...)
		h.client.log.Debug().
			Str("shop_id", shopID).Int("page", page).Int("rows", ds.Len()).
			Msg("shop page harvested")
		ui.ReportProgress(ctx, fmt.Sprintf("Shop %s: page %d done, %d rows", shopID, page, ds.Len()))
		if h.adaptive && !p.HasNext {
			break
		}
	}

	h.finish(ds, report)
	return ds, report, nil
}

// HarvestProduct collects up to pages pages of a single product's
// reviews. Product name and category aggregates stay empty: they only
// exist on search results, which this mode never touches.
func (h *Harvester) HarvestProduct(ctx context.Context, productID string, pages int) (*models.Dataset, *Report, error) {
	ds := models.NewDataset(models.ModeProduct)
	report := &Report{Mode: models.ModeProduct, Identifier: productID}

	for page := 1; page <= pages; page++ {
		p, err := h.client.ProductReviews(ctx, productID, page)
		if err != nil {
			h.finish(ds, report)
			return ds, report, fmt.Errorf("product %s page %d: %w", productID, page, err)
		}
		report.Pages++
		ds.Append(FlattenProductPage(p, nil)...)
		ui.ReportProgress(ctx, fmt.Sprintf("Product %s: page %d done, %d rows", productID, page, ds.Len()))
		if h.adaptive && !p.HasNext {
			break
		}
	}

	h.finish(ds, report)
	return ds, report, nil
}

// HarvestCategory walks up to pages category-search pages and, for every
// product found, fetches one page of its reviews with the product summary
// as broadcast context. Per-product failures are skipped and counted, not
// fatal; a failed search page aborts the run with partial results kept.
func (h *Harvester) HarvestCategory(ctx context.Context, categoryID, pages int) (*models.Dataset, *Report, error) {
	ds := models.NewDataset(models.ModeCategory)
	report := &Report{Mode: models.ModeCategory, Identifier: fmt.Sprintf("%d", categoryID)}

	for page := 1; page <= pages; page++ {
		sp, err := h.client.CategorySearch(ctx, categoryID, page)
		if err != nil {
			h.finish(ds, report)
			return ds, report, fmt.Errorf("category %d search page %d: %w", categoryID, page, err)
		}
		report.Pages++

		summaries := Summaries(sp)
		if len(summaries) == 0 && h.adaptive {
			break
		}
		ui.ReportProgress(ctx, fmt.Sprintf("Category %d: page %d, fetching reviews for %d products", categoryID, page, len(summaries)))

		// One page's fan-out completes before the next page starts.
		pageRecords, skipped, err := h.fanOut(ctx, summaries)
		for _, records := range pageRecords {
			ds.Append(records...)
		}
		report.Skipped += len(skipped)
		report.SkippedProducts = append(report.SkippedProducts, skipped...)
		if err != nil {
			h.finish(ds, report)
			return ds, report, fmt.Errorf("category %d page %d: %w", categoryID, page, err)
		}
	}

	h.finish(ds, report)
	return ds, report, nil
}

// fanOut fetches one review page per product through a bounded worker
// pool. Results come back indexed by search position so the accumulated
// order matches the search result even when fetches finish out of order.
// Only context cancellation is returned as an error; individual product
// failures land in skipped.
func (h *Harvester) fanOut(ctx context.Context, summaries []models.ProductSummary) ([][]models.ReviewRecord, []string, error) {
	pageRecords := make([][]models.ReviewRecord, len(summaries))
	var mu sync.Mutex
	var skipped []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.maxConcurrent)

	for i, summary := range summaries {
		i, summary := i, summary
		g.Go(func() error {
			if h.limiter != nil {
				if err := h.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			p, err := h.client.ProductReviews(gctx, summary.ID, 1)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				h.client.log.Warn().
					Str("product_id", summary.ID).Err(err).
					Msg("skipping product reviews")
				mu.Lock()
				skipped = append(skipped, summary.ID)
				mu.Unlock()
				return nil
			}
			pageRecords[i] = FlattenProductPage(p, &summary)
			return nil
		})
	}

	err := g.Wait()
	return pageRecords, skipped, err
}

// finish runs the one-shot post-accumulation normalization and seals the
// report's row count.
func (h *Harvester) finish(ds *models.Dataset, report *Report) {
	ds.Normalize()
	report.Rows = ds.Len()
}
