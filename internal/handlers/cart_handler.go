package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/middleware"
)

type CartHandler struct {
	cart   *mongo.Collection
	policy StatusPolicy
}

func NewCartHandler(cart *mongo.Collection, policy StatusPolicy) *CartHandler {
	return &CartHandler{cart: cart, policy: policy}
}

// ListOwn returns the caller's cart items. Callers may only read their
// own cart.
func (h *CartHandler) ListOwn(c *fiber.Ctx) error {
	email := c.Query("email")
	if email != middleware.CallerEmail(c) {
		return jsonError(c, h.policy.Ownership(fiber.StatusForbidden), "forbidden access")
	}

	cursor, err := h.cart.Find(c.Context(), bson.M{"studentEmail": email})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch cart")
	}
	defer cursor.Close(c.Context())

	items := []bson.M{}
	if err := cursor.All(c.Context(), &items); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to decode cart")
	}
	return c.JSON(items)
}

// Create adds a course to the caller's cart.
func (h *CartHandler) Create(c *fiber.Ctx) error {
	var item bson.M
	if err := c.BodyParser(&item); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.cart.InsertOne(c.Context(), item)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to add to cart")
	}
	return c.JSON(insertResult(res))
}

// Delete removes a cart item by id.
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart item id")
	}

	res, err := h.cart.DeleteOne(c.Context(), bson.M{"_id": id})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove cart item")
	}
	return c.JSON(deleteResult(res))
}
