package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/jwtmiddleware"
	"github.com/ecofinds/backend/internal/service"
)

type StatsHandler struct {
	Stats *service.StatsService
}

func (h *StatsHandler) Platform(c echo.Context) error {
	stats, err := h.Stats.Platform(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) User(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	stats, err := h.Stats.ForUser(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
