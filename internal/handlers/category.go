package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/service"
)

type CategoryHandler struct {
	Catalog *service.CatalogService
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.Catalog.ListCategories(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Catalog.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		l.Warn("create_category_failed", "error", err)
		return errorResponse(c, err)
	}

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.Catalog.GetCategory(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var patch service.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Catalog.UpdateCategory(ctx, id, patch)
	if err != nil {
		l.Warn("update_category_failed", "error", err)
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Catalog.DeleteCategory(ctx, id); err != nil {
		l.Warn("delete_category_failed", "error", err)
		return errorResponse(c, err)
	}

	l.Info("delete_category_success", "category_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
