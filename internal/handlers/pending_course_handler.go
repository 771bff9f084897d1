package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PendingCourseHandler struct {
	pending *mongo.Collection
}

func NewPendingCourseHandler(pending *mongo.Collection) *PendingCourseHandler {
	return &PendingCourseHandler{pending: pending}
}

// List returns all courses awaiting approval.
func (h *PendingCourseHandler) List(c *fiber.Ctx) error {
	cursor, err := h.pending.Find(c.Context(), bson.M{})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch pending courses")
	}
	defer cursor.Close(c.Context())

	pending := []bson.M{}
	if err := cursor.All(c.Context(), &pending); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to decode pending courses")
	}
	return c.JSON(pending)
}

// Create submits a new course for admin approval (mentor only).
func (h *PendingCourseHandler) Create(c *fiber.Ctx) error {
	var course bson.M
	if err := c.BodyParser(&course); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := h.pending.InsertOne(c.Context(), course)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit course")
	}
	return c.JSON(insertResult(res))
}

// Delete rejects a pending course (admin only).
func (h *PendingCourseHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course id")
	}

	res, err := h.pending.DeleteOne(c.Context(), bson.M{"_id": id})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete pending course")
	}
	return c.JSON(deleteResult(res))
}
