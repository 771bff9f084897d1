package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MessageHandler struct {
	messages *mongo.Collection
}

func NewMessageHandler(messages *mongo.Collection) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Create stores a contact-form submission. Create-only, no further
// lifecycle.
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var message bson.M
	if err := c.BodyParser(&message); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.messages.InsertOne(c.Context(), message)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to store message")
	}
	return c.JSON(insertResult(res))
}
