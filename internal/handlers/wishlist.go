package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/jwtmiddleware"
	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/service"
)

type WishlistHandler struct {
	Wishlist *service.WishlistService
}

func (h *WishlistHandler) Get(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	entries, err := h.Wishlist.List(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *WishlistHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		ListingID uuid.UUID `json:"listingId"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("wishlist_add_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Wishlist.Add(ctx, userID, req.ListingID)
	if err != nil {
		l.Warn("wishlist_add_failed", "error", err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Item added to wishlist successfully",
		"item":    item,
	})
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	listingID, err := parseUUIDParam(c, "listing_id")
	if err != nil {
		return err
	}

	if err := h.Wishlist.Remove(c.Request().Context(), userID, listingID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from wishlist successfully"})
}
