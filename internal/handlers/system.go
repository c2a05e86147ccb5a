package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/logging"
	"github.com/ecofinds/backend/internal/service"
)

type SystemHandler struct {
	DB   *gorm.DB
	Seed *service.SeedService
}

func (h *SystemHandler) Health(c echo.Context) error {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *SystemHandler) SeedData(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "system.seed")

	result, err := h.Seed.Seed(ctx)
	if err != nil {
		l.Error("seed_failed", "error", err)
		return errorResponse(c, err)
	}

	l.Info("seed_success", "categories", result.CategoriesCreated, "listings", result.ListingsCreated)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":            "Database seeded successfully!",
		"categories_created": result.CategoriesCreated,
		"listings_created":   result.ListingsCreated,
	})
}
