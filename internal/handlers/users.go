package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/service"
)

type UserHandler struct {
	Identity *service.IdentityService
	Catalog  *service.CatalogService
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Identity.List(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.Identity.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Listings(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	// Unknown users report 404 instead of an empty list.
	if _, err := h.Identity.Get(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}

	items, err := h.Catalog.ListBySeller(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
