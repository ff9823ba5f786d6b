package tokopedia

import (
	"fmt"
	"net/url"
)

// The gateway routes each operation through its own endpoint suffix
// under the shared base URL.
const (
	defaultBaseURL = "https://gql.tokopedia.com/graphql"

	shopReviewPath     = "/ReviewList"
	productReviewPath  = "/productReviewList"
	categorySearchPath = "/SearchProductQuery"
	categoryListPath   = "/headerMainData"
)

// Page sizes are upstream policy, not negotiated.
const (
	ShopPageSize     = 200
	ProductPageSize  = 15
	CategoryPageSize = 40
)

// Sort keys per review listing.
const (
	shopSortBy    = "create_time desc"
	productSortBy = "informative_score desc"
)

const shopReviewQuery = `query ReviewList(
    $shopID: String!
    $limit: Int!
    $page: Int!
    $filterBy: String
    $sortBy: String
) {
    productrevGetShopReviewReadingList(
        shopID: $shopID
        limit: $limit
        page: $page
        filterBy: $filterBy
        sortBy: $sortBy
    ) {
        list {
            id: reviewID
            product {
                productID
                productName
            }
            rating
            reviewText
            reviewerID
            reviewerName
            replyText
        }
        shopName
        totalReviews
        hasNext
    }
}`

const productReviewQuery = `query productReviewList(
    $productID: String!
    $page: Int!
    $limit: Int!
    $sortBy: String
    $filterBy: String
) {
    productrevGetProductReviewList(
        productID: $productID
        page: $page
        limit: $limit
        sortBy: $sortBy
        filterBy: $filterBy
    ) {
        productID
        totalReviews
        hasNext
        list {
            id: feedbackID
            variantName
            message
            productRating
            reviewResponse {
                message
            }
            user {
                userID
                fullName
            }
        }
        shop {
            shopID
            name
        }
    }
}`

const categorySearchQuery = `query SearchProductQuery($params: String, $adParams: String) {
  CategoryProducts: searchProduct(params: $params) {
    count
    data: products {
      idNumber: id
      id: id_str_auto_
      url
      catIdNumber: category_id
      catId: category_id_str_auto_
      countReview: count_review
      discountPercentage: discount_percentage
      name
      price
      priceInt: price_int
      original_price
      rating
      shop {
        idNumber: id
        id: id_str_auto_
        url
        name
        location
      }
    }
  }
  displayAdsV3(displayParams: $adParams) {
    data {
      id
    }
    template
  }
}`

const categoryListQuery = `query headerMainData($filter: String) {
  categoryAllListLite(filter: $filter) {
    categories {
      id
      name
      children {
        id
        name
        children {
          id
          name
        }
      }
    }
  }
}`

// BuildCategorySearchParams constructs the URL-encoded params string the
// searchProduct resolver expects for a category-scoped directory search.
func BuildCategorySearchParams(categoryID, page int) string {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("ob", "")
	params.Set("identifier", "")
	params.Set("sc", fmt.Sprintf("%d", categoryID))
	params.Set("user_id", "")
	params.Set("rows", fmt.Sprintf("%d", CategoryPageSize))
	params.Set("start", "1")
	params.Set("source", "directory")
	params.Set("device", "desktop")
	params.Set("related", "true")
	params.Set("st", "product")
	params.Set("safe_search", "false")
	return params.Encode()
}

// BuildCategoryAdParams constructs the displayAdsV3 params string. The ads
// payload is ignored, but the resolver rejects requests without it.
func BuildCategoryAdParams(categoryID, page int) string {
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("dep_id", fmt.Sprintf("%d", categoryID))
	params.Set("ob", "")
	params.Set("ep", "product")
	params.Set("item", fmt.Sprintf("%d", CategoryPageSize))
	params.Set("src", "directory")
	params.Set("device", "desktop")
	params.Set("user_id", "")
	params.Set("minimum_item", fmt.Sprintf("%d", CategoryPageSize))
	params.Set("start", "1")
	params.Set("no_autofill_range", "")
	return params.Encode()
}
