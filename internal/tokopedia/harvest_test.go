package tokopedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
)

func newTestHarvester(t *testing.T, handler http.Handler, maxConcurrent int) *Harvester {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.Client(), nil, zerolog.Nop())
	client.base = srv.URL
	return NewHarvester(client, nil, maxConcurrent)
}

func decodeVars(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var payload []struct {
		Variables map[string]any `json:"variables"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	require.Len(t, payload, 1)
	return payload[0].Variables
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func shopEnvelope(p *ShopReviewPage) shopReviewEnvelope {
	env := make(shopReviewEnvelope, 1)
	env[0].Data.ReviewList = p
	return env
}

func productEnvelope(p *ProductReviewPage) productReviewEnvelope {
	env := make(productReviewEnvelope, 1)
	env[0].Data.ReviewList = p
	return env
}

func searchEnvelope(p *CategorySearchPage) categorySearchEnvelope {
	env := make(categorySearchEnvelope, 1)
	env[0].Data.CategoryProducts = p
	return env
}

const emptyDataBody = `[{"data":{}}]`

func TestHarvestShop_FixedPageCountIssuesEveryCall(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	mux := http.NewServeMux()
	mux.HandleFunc(shopReviewPath, func(w http.ResponseWriter, r *http.Request) {
		vars := decodeVars(t, r)
		page := int(vars["page"].(float64))
		assert.Equal(t, "8123", vars["shopID"])
		assert.Equal(t, float64(ShopPageSize), vars["limit"])

		mu.Lock()
		calls++
		mu.Unlock()

		p := &ShopReviewPage{ShopName: "Acme", HasNext: true}
		if page != 2 { // page 2 is empty, later pages still get fetched
			p.List = []ShopReviewItem{shopItem(fmt.Sprintf("r%d", page), "p1", "Widget\nPro", nil)}
			p.List[0].ReviewText = "good\nstuff"
		}
		writeJSON(t, w, shopEnvelope(p))
	})

	h := newTestHarvester(t, mux, 3)
	ds, report, err := h.HarvestShop(context.Background(), "8123", 3)

	require.NoError(t, err)
	assert.Equal(t, 3, calls, "fixed-count mode must fetch every page")
	assert.Equal(t, 3, report.Pages)
	require.Equal(t, 2, ds.Len(), "records only from the non-empty pages")
	assert.Equal(t, "r1", ds.Records()[0].ID)
	assert.Equal(t, "r3", ds.Records()[1].ID)
	assert.Equal(t, "good stuff", ds.Records()[0].ReviewText, "newlines scrubbed after accumulation")
}

func TestHarvestShop_AdaptiveStopsAtLastPage(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	mux := http.NewServeMux()
	mux.HandleFunc(shopReviewPath, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		writeJSON(t, w, shopEnvelope(&ShopReviewPage{
			ShopName: "Acme",
			List:     []ShopReviewItem{shopItem("r1", "p1", "Widget", nil)},
			HasNext:  false,
		}))
	})

	h := newTestHarvester(t, mux, 3)
	h.SetAdaptivePaging(true)
	ds, report, err := h.HarvestShop(context.Background(), "8123", 5)

	require.NoError(t, err)
	assert.Equal(t, 1, calls, "adaptive mode stops when the gateway reports no next page")
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, 1, ds.Len())
}

func TestHarvestShop_SchemaMismatchKeepsPartialRows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(shopReviewPath, func(w http.ResponseWriter, r *http.Request) {
		vars := decodeVars(t, r)
		if int(vars["page"].(float64)) == 2 {
			fmt.Fprint(w, emptyDataBody)
			return
		}
		writeJSON(t, w, shopEnvelope(&ShopReviewPage{
			ShopName: "Acme",
			List:     []ShopReviewItem{shopItem("r1", "p1", "Widget", nil)},
			HasNext:  true,
		}))
	})

	h := newTestHarvester(t, mux, 3)
	ds, report, err := h.HarvestShop(context.Background(), "8123", 3)

	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, 1, ds.Len(), "rows accumulated before the failure are kept")
}

func TestHarvestProduct_PartialOnPageFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(productReviewPath, func(w http.ResponseWriter, r *http.Request) {
		vars := decodeVars(t, r)
		if int(vars["page"].(float64)) == 2 {
			fmt.Fprint(w, emptyDataBody)
			return
		}
		writeJSON(t, w, productEnvelope(&ProductReviewPage{
			ProductID: "p9",
			List:      []ProductReviewItem{productItem("f1", true), productItem("f2", false)},
			Shop:      ProductReviewShop{Name: "Acme"},
			HasNext:   true,
		}))
	})

	h := newTestHarvester(t, mux, 3)
	ds, report, err := h.HarvestProduct(context.Background(), "p9", 3)

	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, 1, report.Pages)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Acme", ds.Records()[0].ShopName)
	assert.Nil(t, ds.Records()[1].ReplyText)
}

func TestHarvestCategory_SkipsFailedProductAndKeepsOrder(t *testing.T) {
	var mu sync.Mutex
	productCalls := 0
	inFlight, maxInFlight := 0, 0

	searchIDs := []string{"p1", "p2", "p3", "p4"}

	mux := http.NewServeMux()
	mux.HandleFunc(categorySearchPath, func(w http.ResponseWriter, r *http.Request) {
		vars := decodeVars(t, r)
		params, err := url.ParseQuery(vars["params"].(string))
		require.NoError(t, err)
		assert.Equal(t, "55", params.Get("sc"))
		assert.Equal(t, "40", params.Get("rows"))

		page := &CategorySearchPage{Count: len(searchIDs)}
		for _, id := range searchIDs {
			product := SearchProduct{ID: id, Name: "product " + id, PriceInt: 5000, Rating: 4.2, CountReview: 11}
			product.Shop.Location = "Surabaya"
			page.Products = append(page.Products, product)
		}
		writeJSON(t, w, searchEnvelope(page))
	})
	mux.HandleFunc(productReviewPath, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		productCalls++
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		defer func() {
			mu.Lock()
			inFlight--
			mu.Unlock()
		}()

		vars := decodeVars(t, r)
		productID := vars["productID"].(string)
		assert.Equal(t, float64(1), vars["page"], "drill-down fetches exactly one review page per product")

		if productID == "p2" {
			fmt.Fprint(w, emptyDataBody)
			return
		}
		writeJSON(t, w, productEnvelope(&ProductReviewPage{
			ProductID: productID,
			List:      []ProductReviewItem{productItem(productID+"-f1", false), productItem(productID+"-f2", true)},
			Shop:      ProductReviewShop{Name: "Acme"},
		}))
	})

	h := newTestHarvester(t, mux, 2)
	ds, report, err := h.HarvestCategory(context.Background(), 55, 1)

	require.NoError(t, err, "one failed product must not abort the category run")
	assert.Equal(t, 4, productCalls)
	assert.LessOrEqual(t, maxInFlight, 2, "fan-out bounded by the worker limit")
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"p2"}, report.SkippedProducts)

	require.Equal(t, 6, ds.Len(), "two records from each of the three surviving products")
	gotOrder := []string{}
	seen := map[string]bool{}
	for _, rec := range ds.Records() {
		if !seen[rec.ProductID] {
			seen[rec.ProductID] = true
			gotOrder = append(gotOrder, rec.ProductID)
		}
		assert.Contains(t, searchIDs, rec.ProductID, "no fabricated products")
		// broadcast context from the search result
		assert.Equal(t, "product "+rec.ProductID, rec.ProductName)
		assert.Equal(t, "Surabaya", rec.Location)
		assert.Equal(t, int64(5000), rec.Price)
		assert.Equal(t, 4.2, rec.Overall)
		assert.Equal(t, 11, rec.Total)
	}
	assert.Equal(t, []string{"p1", "p3", "p4"}, gotOrder, "accumulated order follows the search result")
}

func TestHarvestCategory_SearchFailureAbortsRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(categorySearchPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, emptyDataBody)
	})

	h := newTestHarvester(t, mux, 2)
	ds, report, err := h.HarvestCategory(context.Background(), 55, 2)

	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, 0, report.Pages)
	assert.Equal(t, 0, ds.Len())
}

func TestClientCategories_ResolvesTree(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(categoryListPath, func(w http.ResponseWriter, r *http.Request) {
		vars := decodeVars(t, r)
		assert.Equal(t, "buyer", vars["filter"])

		env := make(categoryListEnvelope, 1)
		env[0].Data.CategoryAllListLite = &struct {
			Categories []models.Category `json:"categories"`
		}{Categories: []models.Category{
			{ID: 55, Name: "Mainan & Hobi", Children: []models.Category{{ID: 551, Name: "Action Figure"}}},
			{ID: 61, Name: "Buku"},
		}}
		writeJSON(t, w, env)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := NewClient(srv.Client(), nil, zerolog.Nop())
	client.base = srv.URL

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	child, ok := FindCategory(categories, 551)
	require.True(t, ok, "child categories resolve too")
	assert.Equal(t, "Action Figure", child.Name)

	_, ok = FindCategory(categories, 999)
	assert.False(t, ok)
}
