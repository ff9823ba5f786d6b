package tokopedia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/httputil"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/session"
)

// ErrSchemaMismatch means the gateway answered but the expected resource
// key was missing: a bad identifier or an upstream contract change. Not
// to be confused with an empty review list, which is a valid page.
var ErrSchemaMismatch = errors.New("unexpected gateway response schema")

// Client executes the fixed GraphQL queries against the gateway. One
// network round trip per call; transient transport failures are retried
// by httputil, schema problems are not.
type Client struct {
	hc   *http.Client
	sess *session.Session
	base string
	log  zerolog.Logger
}

func NewClient(hc *http.Client, sess *session.Session, log zerolog.Logger) *Client {
	return &Client{hc: hc, sess: sess, base: defaultBaseURL, log: log}
}

type gqlRequest struct {
	Query         string `json:"query"`
	Variables     any    `json:"variables"`
	OperationName string `json:"operationName"`
}

// post sends one array-wrapped GraphQL request and decodes the response
// envelope into out.
func (c *Client) post(ctx context.Context, path, opName, query string, variables, out any) error {
	payload := []gqlRequest{{Query: query, Variables: variables, OperationName: opName}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	for k, v := range httputil.GatewayHeaders() {
		req.Header[k] = v
	}
	if c.sess != nil {
		for k, v := range c.sess.Fingerprint.Headers {
			req.Header[k] = v
		}
		req.Header.Set("User-Agent", c.sess.Fingerprint.UserAgent)
		req.Header.Set("Cookie", c.sess.Cookie)
	}

	resp, err := httputil.DoWithRetry(c.hc, req, 2)
	if err != nil {
		return fmt.Errorf("%s: %w", opName, err)
	}
	defer resp.Body.Close()

	respBody, err := httputil.ReadBody(resp)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", opName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: response status %d: %s", opName, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: %w: %v", opName, ErrSchemaMismatch, err)
	}

	c.log.Debug().Str("operation", opName).Int("bytes", len(respBody)).Msg("gateway query")
	return nil
}

// ShopReviewPage is the typed payload of one shop review listing page.
type ShopReviewPage struct {
	List         []ShopReviewItem `json:"list"`
	ShopName     string           `json:"shopName"`
	TotalReviews int              `json:"totalReviews"`
	HasNext      bool             `json:"hasNext"`
}

type ShopReviewItem struct {
	ID      string `json:"id"`
	Product struct {
		ProductID   string `json:"productID"`
		ProductName string `json:"productName"`
	} `json:"product"`
	Rating       int     `json:"rating"`
	ReviewText   string  `json:"reviewText"`
	ReviewerID   string  `json:"reviewerID"`
	ReviewerName string  `json:"reviewerName"`
	ReplyText    *string `json:"replyText"`
}

type shopReviewEnvelope []struct {
	Data struct {
		ReviewList *ShopReviewPage `json:"productrevGetShopReviewReadingList"`
	} `json:"data"`
}

// ShopReviews fetches one page of a shop's review listing.
func (c *Client) ShopReviews(ctx context.Context, shopID string, page int) (*ShopReviewPage, error) {
	variables := map[string]any{
		"shopID":   shopID,
		"page":     page,
		"limit":    ShopPageSize,
		"sortBy":   shopSortBy,
		"filterBy": "",
	}

	var env shopReviewEnvelope
	if err := c.post(ctx, shopReviewPath, "ReviewList", shopReviewQuery, variables, &env); err != nil {
		return nil, err
	}
	if len(env) == 0 || env[0].Data.ReviewList == nil {
		return nil, fmt.Errorf("%w: missing shop review list for shop %s", ErrSchemaMismatch, shopID)
	}
	return env[0].Data.ReviewList, nil
}

// ProductReviewPage is the typed payload of one product review listing page.
type ProductReviewPage struct {
	ProductID    string              `json:"productID"`
	List         []ProductReviewItem `json:"list"`
	Shop         ProductReviewShop   `json:"shop"`
	TotalReviews int                 `json:"totalReviews"`
	HasNext      bool                `json:"hasNext"`
}

type ProductReviewShop struct {
	ShopID string `json:"shopID"`
	Name   string `json:"name"`
}

type ProductReviewItem struct {
	ID             string `json:"id"`
	VariantName    string `json:"variantName"`
	Message        string `json:"message"`
	ProductRating  int    `json:"productRating"`
	ReviewResponse *struct {
		Message string `json:"message"`
	} `json:"reviewResponse"`
	User struct {
		UserID   string `json:"userID"`
		FullName string `json:"fullName"`
	} `json:"user"`
}

type productReviewEnvelope []struct {
	Data struct {
		ReviewList *ProductReviewPage `json:"productrevGetProductReviewList"`
	} `json:"data"`
}

// ProductReviews fetches one page of a product's review listing.
func (c *Client) ProductReviews(ctx context.Context, productID string, page int) (*ProductReviewPage, error) {
	variables := map[string]any{
		"productID": productID,
		"page":      page,
		"limit":     ProductPageSize,
		"sortBy":    productSortBy,
		"filterBy":  "",
	}

	var env productReviewEnvelope
	if err := c.post(ctx, productReviewPath, "productReviewList", productReviewQuery, variables, &env); err != nil {
		return nil, err
	}
	if len(env) == 0 || env[0].Data.ReviewList == nil {
		return nil, fmt.Errorf("%w: missing product review list for product %s", ErrSchemaMismatch, productID)
	}
	return env[0].Data.ReviewList, nil
}

// CategorySearchPage is the typed payload of one category search page.
type CategorySearchPage struct {
	Count    int             `json:"count"`
	Products []SearchProduct `json:"data"`
}

type SearchProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PriceInt    int64   `json:"priceInt"`
	Rating      float64 `json:"rating"`
	CountReview int     `json:"countReview"`
	Shop        struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"shop"`
}

type categorySearchEnvelope []struct {
	Data struct {
		CategoryProducts *CategorySearchPage `json:"CategoryProducts"`
	} `json:"data"`
}

// CategorySearch fetches one page of the category-scoped product search.
func (c *Client) CategorySearch(ctx context.Context, categoryID, page int) (*CategorySearchPage, error) {
	variables := map[string]any{
		"params":   BuildCategorySearchParams(categoryID, page),
		"adParams": BuildCategoryAdParams(categoryID, page),
	}

	var env categorySearchEnvelope
	if err := c.post(ctx, categorySearchPath, "SearchProductQuery", categorySearchQuery, variables, &env); err != nil {
		return nil, err
	}
	if len(env) == 0 || env[0].Data.CategoryProducts == nil {
		return nil, fmt.Errorf("%w: missing search result for category %d", ErrSchemaMismatch, categoryID)
	}
	return env[0].Data.CategoryProducts, nil
}

type categoryListEnvelope []struct {
	Data struct {
		CategoryAllListLite *struct {
			Categories []models.Category `json:"categories"`
		} `json:"categoryAllListLite"`
	} `json:"data"`
}

// Categories fetches the buyer category tree. Called once per session,
// only to resolve a chosen identifier to a display name.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	variables := map[string]any{"filter": "buyer"}

	var env categoryListEnvelope
	if err := c.post(ctx, categoryListPath, "headerMainData", categoryListQuery, variables, &env); err != nil {
		return nil, err
	}
	if len(env) == 0 || env[0].Data.CategoryAllListLite == nil {
		return nil, fmt.Errorf("%w: missing category listing", ErrSchemaMismatch)
	}
	return env[0].Data.CategoryAllListLite.Categories, nil
}
