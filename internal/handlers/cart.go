package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/jwtmiddleware"
	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/mykafka"
	"github.com/ecofinds/backend/internal/service"
)

type CartHandler struct {
	Cart     *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userId"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	entries, err := h.Cart.List(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		ListingID uuid.UUID `json:"listingId"`
		Qty       int       `json:"qty"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_add_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.Add(ctx, userID, req.ListingID, req.Qty)
	if err != nil {
		l.Warn("cart_add_failed", "error", err)
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userId":    userID,
		"listingId": req.ListingID,
		"qty":       item.Qty,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Item added to cart successfully",
		"item":    item,
	})
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Qty int `json:"qty"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("cart_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.SetQuantity(ctx, userID, itemID, req.Qty)
	if err != nil {
		l.Warn("cart_update_failed", "error", err)
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_updated",
		"userId": userID,
		"itemId": itemID,
		"qty":    item.Qty,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Cart.Remove(c.Request().Context(), userID, itemID); err != nil {
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_removed",
		"userId": userID,
		"itemId": itemID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Cart item removed successfully"})
}

func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.Cart.Clear(c.Request().Context(), userID); err != nil {
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":   "cart_cleared",
		"userId": userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared successfully"})
}
