package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/jwtmiddleware"
	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/mykafka"
	"github.com/ecofinds/backend/internal/service"
)

type OrderHandler struct {
	Orders   *service.OrderService
	Checkout *service.CheckoutService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["orderId"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *OrderHandler) DoCheckout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	order, err := h.Checkout.Checkout(ctx, userID)
	if err != nil {
		l.Warn("checkout_failed", "error", err)
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":    "order_created",
		"orderId": order.ID,
		"userId":  userID,
		"total":   order.Total,
	})

	l.Info("checkout_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"total":   order.Total,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Orders.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Orders.Get(c.Request().Context(), orderID, userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("order_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.UpdateStatus(ctx, orderID, userID, req.Status)
	if err != nil {
		l.Warn("order_update_failed", "error", err)
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":    "order_cancelled",
		"orderId": order.ID,
		"userId":  userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Order cancelled successfully"})
}
