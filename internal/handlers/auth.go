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

const accessTokenTTL = 24 * time.Hour

type AuthHandler struct {
	Identity  *service.IdentityService
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userId"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Identity.Register(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		l.Warn("signup_failed", "error", err)
		return errorResponse(c, err)
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userId": user.ID,
		"email":  user.Email,
	})

	l.Info("signup_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return errorResponse(c, err)
	}

	token, err := jwtmiddleware.SignAccessToken(user.ID, h.JWTSecret, accessTokenTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create token")
	}

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userId": user.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.Identity.Get(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_me")

	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	var patch service.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_me_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Identity.Update(ctx, userID, patch)
	if err != nil {
		l.Warn("update_me_failed", "error", err)
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
