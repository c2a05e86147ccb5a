package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecofinds/backend/internal/service"
)

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"error"`
}

func kindOf(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusBadRequest, "invalid_state"
	}
	return http.StatusInternalServerError, "internal"
}

// errorResponse translates a service error into the wire error shape.
// Unclassified errors keep their detail out of the response body.
func errorResponse(c echo.Context, err error) error {
	code, kind := kindOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(code, ErrorResponse{Kind: kind, Message: msg})
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
