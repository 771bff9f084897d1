package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/middleware"
)

type fakeRegistrationStore struct {
	students []bson.M
}

func (s *fakeRegistrationStore) Insert(_ context.Context, student bson.M) (interface{}, error) {
	s.students = append(s.students, student)
	return primitive.NewObjectID(), nil
}

func (s *fakeRegistrationStore) ListAll(_ context.Context) ([]bson.M, error) {
	return s.students, nil
}

func (s *fakeRegistrationStore) FindByEmail(_ context.Context, email string) (bson.M, error) {
	for _, st := range s.students {
		if st["email"] == email {
			return st, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeRegistrationStore) Upsert(_ context.Context, _ primitive.ObjectID, _ bson.M) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func newRegisterApp(store RegistrationStore, caller string) *fiber.App {
	h := NewRegisterHandler(store, StatusPolicy{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.EmailKey, caller)
		return c.Next()
	})
	app.Post("/register", h.Create)
	app.Get("/register", h.GetOwn)
	return app
}

// A registration read must return the document as stored, including
// fields outside the documented shape.
func TestRegister_RoundTripPreservesAllFields(t *testing.T) {
	store := &fakeRegistrationStore{}
	app := newRegisterApp(store, "a@x.com")

	req := httptest.NewRequest(http.MethodPost, "/register",
		jsonBody(`{"email":"a@x.com","fullName":"Ana","gender":"f"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/register?email=a@x.com", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "Ana", body["fullName"])
	assert.Equal(t, "f", body["gender"])
}

func TestRegisterGetOwn_NoRecord(t *testing.T) {
	store := &fakeRegistrationStore{}
	app := newRegisterApp(store, "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/register?email=a@x.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
