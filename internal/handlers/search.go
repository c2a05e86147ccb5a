package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/service"
	"github.com/ecofinds/backend/internal/service/search"
	"github.com/ecofinds/backend/internal/util"
)

type SearchHandler struct {
	Catalog *service.CatalogService
	ES      *elasticsearch.Client
	Index   string
}

// Search serves free-text queries from Elasticsearch when a client is
// configured and the request has no structured filters; everything else
// goes through the catalog's database path.
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	filter := service.ListingFilter{
		Query:    q,
		MinPrice: parseFloatParam(c.QueryParam("min_price")),
		MaxPrice: parseFloatParam(c.QueryParam("max_price")),
		Status:   c.QueryParam("status"),
		SortBy:   c.QueryParam("sort"),
		SortDesc: c.QueryParam("order") != "asc",
	}
	if filter.Status == "" {
		filter.Status = "active"
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter.CategoryID = id
	}

	structured := filter.CategoryID != uuid.Nil || filter.MinPrice != nil || filter.MaxPrice != nil ||
		c.QueryParam("status") != "" || c.QueryParam("sort") != ""

	if h.ES != nil && q != "" && !structured {
		total, listings, err := search.Search(ctx, h.ES, h.Index, q, offset, limit)
		if err == nil {
			return c.JSON(http.StatusOK, echo.Map{
				"listings": listings,
				"pagination": echo.Map{
					"page":  page,
					"limit": limit,
					"total": total,
					"pages": util.Pages(total, limit),
				},
			})
		}
		logging.FromContext(ctx).Warn("es search failed, falling back to db", "error", err)
	}

	items, total, err := h.Catalog.Find(ctx, filter, offset, limit)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"listings": items,
		"pagination": echo.Map{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": util.Pages(total, limit),
		},
	})
}
