package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/middleware"
)

type RegisterHandler struct {
	registrations RegistrationStore
	policy        StatusPolicy
}

func NewRegisterHandler(registrations RegistrationStore, policy StatusPolicy) *RegisterHandler {
	return &RegisterHandler{registrations: registrations, policy: policy}
}

// Create stores a student's registration details.
func (h *RegisterHandler) Create(c *fiber.Ctx) error {
	var student bson.M
	if err := c.BodyParser(&student); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	id, err := h.registrations.Insert(c.Context(), student)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to register student")
	}
	return c.JSON(insertedResult(id))
}

// ListAll returns every registration (admin only).
func (h *RegisterHandler) ListAll(c *fiber.Ctx) error {
	students, err := h.registrations.ListAll(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch registrations")
	}
	return c.JSON(students)
}

// GetOwn returns the caller's registration record exactly as stored.
// Callers may only read their own.
func (h *RegisterHandler) GetOwn(c *fiber.Ctx) error {
	email := c.Query("email")
	if email != middleware.CallerEmail(c) {
		return jsonError(c, h.policy.Ownership(fiber.StatusUnauthorized), "unauthorized access")
	}

	student, err := h.registrations.FindByEmail(c.Context(), email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return jsonError(c, fiber.StatusNotFound, "registration not found")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch registration")
	}
	return c.JSON(student)
}

type registrationUpdateRequest struct {
	FullName    string `json:"fullName"`
	Nationality string `json:"nationality"`
	Passport    string `json:"passport"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// Upsert replaces a registration's fields keyed by document id.
func (h *RegisterHandler) Upsert(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid registration id")
	}
	var body registrationUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	set := bson.M{
		"fullName":    body.FullName,
		"nationality": body.Nationality,
		"passportNo":  body.Passport,
		"phoneNo":     body.Phone,
		"address":     body.Address,
	}
	res, err := h.registrations.Upsert(c.Context(), id, set)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update registration")
	}
	return c.JSON(updateResult(res))
}
