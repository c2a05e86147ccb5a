package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/jwtmiddleware"
	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/models"
	"github.com/ecofinds/backend/internal/mykafka"
	"github.com/ecofinds/backend/internal/service"
	"github.com/ecofinds/backend/internal/service/search"
	"github.com/ecofinds/backend/internal/util"
)

type ListingHandler struct {
	Catalog  *service.CatalogService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return &v
	}
	return nil
}

func (h *ListingHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "listing_events", fmt.Sprint(event["listingId"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *ListingHandler) index(c echo.Context, listing *models.Listing) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexListing(ctx, h.ES, h.Index, listing); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index failed", "error", err, "listing_id", listing.ID)
	}
}

func (h *ListingHandler) deindex(c echo.Context, id uuid.UUID) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.RemoveListing(ctx, h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es deindex failed", "error", err, "listing_id", id)
	}
}

func (h *ListingHandler) List(c echo.Context) error {
	filter := service.ListingFilter{
		Title:    c.QueryParam("search"),
		MinPrice: parseFloatParam(c.QueryParam("min_price")),
		MaxPrice: parseFloatParam(c.QueryParam("max_price")),
		SortDesc: true,
	}
	if raw := c.QueryParam("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter.CategoryID = id
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize))

	items, total, err := h.Catalog.Find(c.Request().Context(), filter, offset, limit)
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

func (h *ListingHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "listing.create")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Price       float64   `json:"price"`
		CategoryID  uuid.UUID `json:"categoryId"`
		ImageURL    string    `json:"imageUrl"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_listing_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	listing, err := h.Catalog.CreateListing(ctx, userID, req.Title, req.Description, req.Price, req.CategoryID, req.ImageURL)
	if err != nil {
		l.Warn("create_listing_failed", "error", err)
		return errorResponse(c, err)
	}

	h.index(c, listing)
	h.publish(c, map[string]any{
		"type":      "listing_created",
		"listingId": listing.ID,
		"sellerId":  userID,
		"title":     listing.Title,
	})

	l.Info("create_listing_success", "listing_id", listing.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Listing created successfully",
		"listing": listing,
	})
}

func (h *ListingHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.Catalog.GetListing(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "listing.update")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch service.ListingPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_listing_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	listing, err := h.Catalog.UpdateListing(ctx, id, userID, patch)
	if err != nil {
		l.Warn("update_listing_failed", "error", err)
		return errorResponse(c, err)
	}

	h.index(c, listing)
	h.publish(c, map[string]any{
		"type":      "listing_updated",
		"listingId": listing.ID,
		"sellerId":  userID,
	})

	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "listing.delete")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Catalog.DeleteListing(ctx, id, userID); err != nil {
		l.Warn("delete_listing_failed", "error", err)
		return errorResponse(c, err)
	}

	h.deindex(c, id)
	h.publish(c, map[string]any{
		"type":      "listing_deleted",
		"listingId": id,
		"sellerId":  userID,
	})

	l.Info("delete_listing_success", "listing_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Listing deleted successfully"})
}

func (h *ListingHandler) MyListings(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.Catalog.ListBySeller(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
