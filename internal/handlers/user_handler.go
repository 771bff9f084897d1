package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/middleware"
)

type UserHandler struct {
	users  UserStore
	policy StatusPolicy
}

func NewUserHandler(users UserStore, policy StatusPolicy) *UserHandler {
	return &UserHandler{users: users, policy: policy}
}

// GetRole returns the caller's own stored role, null when no role has
// been assigned. Callers may only look up themselves.
func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != middleware.CallerEmail(c) {
		return jsonError(c, h.policy.Ownership(fiber.StatusUnauthorized), "unauthorized access")
	}

	user, err := h.users.FindByEmail(c.Context(), email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return jsonError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	var role interface{}
	if user.Role != "" {
		role = user.Role
	}
	return c.JSON(fiber.Map{"role": role})
}

// List returns all users, optionally filtered by an email substring.
func (h *UserHandler) List(c *fiber.Ctx) error {
	query := bson.M{}
	if search := c.Query("search"); search != "" {
		query = bson.M{"email": bson.M{"$regex": search, "$options": "i"}}
	}

	users, err := h.users.List(c.Context(), query)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}
	return c.JSON(users)
}

// Create stores a user on first sign-in. Duplicate emails are rejected
// without creating a second document.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var user bson.M
	if err := c.BodyParser(&user); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, _ := user["email"].(string)
	if email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email is required")
	}

	_, err := h.users.FindByEmail(c.Context(), email)
	if err == nil {
		return jsonError(c, h.policy.Conflict(), "user exists already")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to check user")
	}

	id, err := h.users.Insert(c.Context(), user)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create user")
	}
	return c.JSON(insertedResult(id))
}

// UpdateRole sets a user's role (admin only).
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.users.SetRole(c.Context(), id, body.Role)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update user")
	}
	return c.JSON(updateResult(res))
}

// Delete removes a user (admin only).
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	res, err := h.users.Delete(c.Context(), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete user")
	}
	return c.JSON(deleteResult(res))
}
