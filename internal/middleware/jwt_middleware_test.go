package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"donation-api/internal/middleware"
	"donation-api/internal/models"
	"donation-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator map[string]models.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (models.Principal, error) {
	switch token {
	case "deactivated-token":
		return models.Principal{}, fmt.Errorf("%w: account 9 is not active", services.ErrUnauthorized)
	case "db-down-token":
		return models.Principal{}, errors.New("connection refused")
	}
	p, ok := s[token]
	if !ok {
		return models.Principal{}, fmt.Errorf("%w: invalid token", services.ErrUnauthorized)
	}
	return p, nil
}

func newTestApp() *fiber.App {
	validator := stubAuthenticator{
		"user-token":  {UserID: 7, Role: models.RoleOrdinary},
		"admin-token": {UserID: 1, Role: models.RoleAdmin},
	}
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(validator), func(c *fiber.Ctx) error {
		p, ok := middleware.PrincipalFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"user_id": p.UserID, "role": p.Role})
	})
	app.Get("/admin", middleware.AuthRequired(validator), middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, auth string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/me", "Token user-token"))
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/me", "Bearer nope"))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/me", "Bearer user-token"))
}

func TestAuthRequired_InactiveAccountAndLookupFailure(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/me", "Bearer deactivated-token"))
	assert.Equal(t, http.StatusInternalServerError, doGet(t, app, "/me", "Bearer db-down-token"))
}

func TestAdminOnly(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/admin", ""))
	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/admin", "Bearer user-token"))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/admin", "Bearer admin-token"))
}
