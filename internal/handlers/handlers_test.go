package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingoverse/lingoverse-server/internal/middleware"
	"github.com/lingoverse/lingoverse-server/internal/services"
)

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func TestStatusPolicy_Standardized(t *testing.T) {
	p := StatusPolicy{}

	assert.Equal(t, fiber.StatusConflict, p.Conflict())
	assert.Equal(t, fiber.StatusForbidden, p.Ownership(fiber.StatusUnauthorized))
	assert.Equal(t, fiber.StatusForbidden, p.Ownership(fiber.StatusForbidden))
	assert.Equal(t, fiber.StatusNotFound, p.NoCourse())
	assert.Equal(t, fiber.StatusConflict, p.NoSeat())
}

func TestStatusPolicy_Legacy(t *testing.T) {
	p := StatusPolicy{Legacy: true}

	assert.Equal(t, fiber.StatusForbidden, p.Conflict())
	assert.Equal(t, fiber.StatusUnauthorized, p.Ownership(fiber.StatusUnauthorized))
	assert.Equal(t, fiber.StatusForbidden, p.Ownership(fiber.StatusForbidden))
	assert.Equal(t, fiber.StatusBadRequest, p.NoCourse())
	assert.Equal(t, fiber.StatusBadRequest, p.NoSeat())
}

// asCaller fakes an authenticated request by seeding the locals the auth
// middleware would set.
func asCaller(email string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.EmailKey, email)
		return c.Next()
	})
	app.All("/*", handler)
	return app
}

// The ownership checks run before any store access, so a handler with a
// nil collection is enough to exercise the denial paths.

func TestCartListOwn_OwnershipMismatch(t *testing.T) {
	h := NewCartHandler(nil, StatusPolicy{})
	app := asCaller("a@x.com", h.ListOwn)

	req := httptest.NewRequest(http.MethodGet, "/courseCart?email=b@x.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRegisterGetOwn_OwnershipMismatchLegacy(t *testing.T) {
	h := NewRegisterHandler(nil, StatusPolicy{Legacy: true})
	app := asCaller("a@x.com", h.GetOwn)

	req := httptest.NewRequest(http.MethodGet, "/register?email=b@x.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUserGetRole_OwnershipMismatch(t *testing.T) {
	h := NewUserHandler(nil, StatusPolicy{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.EmailKey, "a@x.com")
		return c.Next()
	})
	app.Get("/users/:email", h.GetRole)

	req := httptest.NewRequest(http.MethodGet, "/users/b@x.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestEnrollmentCreate_InvalidIDs(t *testing.T) {
	h := NewEnrollmentHandler(nil, nil, StatusPolicy{})
	app := asCaller("a@x.com", h.Create)

	req := httptest.NewRequest(http.MethodPost, "/enrolledStudents",
		jsonBody(`{"email":"a@x.com","courseId":"nope","cartId":"nope"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthIssueToken(t *testing.T) {
	h := NewAuthHandler(services.NewTokenService("test-secret"))
	app := fiber.New()
	app.Post("/jwt", h.IssueToken)

	req := httptest.NewRequest(http.MethodPost, "/jwt", jsonBody(`{"email":"a@x.com"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
}

func TestAuthIssueToken_MissingEmail(t *testing.T) {
	h := NewAuthHandler(services.NewTokenService("test-secret"))
	app := fiber.New()
	app.Post("/jwt", h.IssueToken)

	req := httptest.NewRequest(http.MethodPost, "/jwt", jsonBody(`{}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPaymentCreateIntent_NonPositivePrice(t *testing.T) {
	h := NewPaymentHandler(nil)
	app := asCaller("a@x.com", h.CreateIntent)

	req := httptest.NewRequest(http.MethodPost, "/create-stripe-payment-intent",
		jsonBody(`{"price":0}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
