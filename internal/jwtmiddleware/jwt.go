package jwtmiddleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// RequireAuth validates a bearer token and leaves the parsed token at
// the "user" context key.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		ContextKey:    "user",
		SigningKey:    secret,
	})
}

// UserID pulls the authenticated user id out of the request context.
func UserID(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}

// SignAccessToken issues the bearer token handed out at login.
func SignAccessToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
