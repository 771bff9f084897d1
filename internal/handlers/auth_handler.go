package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lingoverse/lingoverse-server/internal/services"
)

type AuthHandler struct {
	tokens *services.TokenService
}

func NewAuthHandler(tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueToken signs an access token for the claimed email. Only the email
// field of the body is used; nothing else gets signed.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email is required")
	}

	token, err := h.tokens.Issue(body.Email)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(fiber.Map{"token": token})
}
