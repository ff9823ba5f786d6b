package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/models"
	"github.com/Shafnaa/scrapping-tokopedia-review/internal/tokopedia"
)

func registerTools(s *server.MCPServer, deps Deps) {
	shopTool := mcp.NewTool("harvest_shop_reviews",
		mcp.WithDescription("Harvest reviews left for a Tokopedia shop, flattened to one record per review"),
		mcp.WithString("shop_id",
			mcp.Required(),
			mcp.Description("Numeric shop identifier"),
		),
		mcp.WithNumber("pages",
			mcp.Description("Pages to fetch, 200 reviews per page (default: 1)"),
		),
	)
	s.AddTool(shopTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		shopID := request.GetString("shop_id", "")
		if shopID == "" {
			return mcp.NewToolResultError("shop_id is required"), nil
		}
		pages := request.GetInt("pages", 1)

		ds, report, err := deps.Harvester.HarvestShop(ctx, shopID, pages)
		return harvestResult(ds, report, err)
	})

	productTool := mcp.NewTool("harvest_product_reviews",
		mcp.WithDescription("Harvest reviews for a single Tokopedia product"),
		mcp.WithString("product_id",
			mcp.Required(),
			mcp.Description("Numeric product identifier"),
		),
		mcp.WithNumber("pages",
			mcp.Description("Pages to fetch, 15 reviews per page (default: 1)"),
		),
	)
	s.AddTool(productTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		productID := request.GetString("product_id", "")
		if productID == "" {
			return mcp.NewToolResultError("product_id is required"), nil
		}
		pages := request.GetInt("pages", 1)

		ds, report, err := deps.Harvester.HarvestProduct(ctx, productID, pages)
		return harvestResult(ds, report, err)
	})

	categoryTool := mcp.NewTool("harvest_category_reviews",
		mcp.WithDescription("Harvest reviews for every product in a Tokopedia category (one review page per product)"),
		mcp.WithNumber("category_id",
			mcp.Required(),
			mcp.Description("Numeric category identifier (see list_categories)"),
		),
		mcp.WithNumber("pages",
			mcp.Description("Search pages to walk, 40 products per page (default: 1)"),
		),
	)
	s.AddTool(categoryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categoryID := request.GetInt("category_id", 0)
		if categoryID == 0 {
			return mcp.NewToolResultError("category_id is required"), nil
		}
		pages := request.GetInt("pages", 1)

		ds, report, err := deps.Harvester.HarvestCategory(ctx, categoryID, pages)
		return harvestResult(ds, report, err)
	})

	categoriesTool := mcp.NewTool("list_categories",
		mcp.WithDescription("List the Tokopedia buyer category tree"),
	)
	s.AddTool(categoriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categories, err := deps.Client.Categories(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list categories: %v", err)), nil
		}
		data, _ := json.MarshalIndent(categories, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// harvestResult renders a finished run. Partial datasets are returned
// with the error message attached rather than thrown away.
func harvestResult(ds *models.Dataset, report *tokopedia.Report, err error) (*mcp.CallToolResult, error) {
	if err != nil && ds.Len() == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("harvest error: %v", err)), nil
	}

	out := struct {
		Report  *tokopedia.Report     `json:"report"`
		Error   string                `json:"error,omitempty"`
		Records []models.ReviewRecord `json:"records"`
	}{
		Report:  report,
		Records: ds.Records(),
	}
	if err != nil {
		out.Error = fmt.Sprintf("run aborted early, records are partial: %v", err)
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
