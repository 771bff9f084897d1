package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lingoverse/lingoverse-server/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent creates a Stripe payment intent for the given price and
// returns its client secret.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Price <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "price must be positive")
	}

	clientSecret, err := h.payments.CreateIntent(c.Context(), body.Price)
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "failed to create payment intent")
	}
	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}
