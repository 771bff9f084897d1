package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lingoverse/lingoverse-server/internal/middleware"
	"github.com/lingoverse/lingoverse-server/internal/services"
)

type EnrollmentHandler struct {
	enrollments *mongo.Collection
	enroller    *services.EnrollmentService
	policy      StatusPolicy
}

func NewEnrollmentHandler(enrollments *mongo.Collection, enroller *services.EnrollmentService, policy StatusPolicy) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, enroller: enroller, policy: policy}
}

// ListOwn returns the caller's enrollments. Callers may only read their
// own.
func (h *EnrollmentHandler) ListOwn(c *fiber.Ctx) error {
	email := c.Query("email")
	if email != middleware.CallerEmail(c) {
		return jsonError(c, h.policy.Ownership(fiber.StatusForbidden), "forbidden access")
	}

	cursor, err := h.enrollments.Find(c.Context(), bson.M{"email": email})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch enrollments")
	}
	defer cursor.Close(c.Context())

	enrolled := []bson.M{}
	if err := cursor.All(c.Context(), &enrolled); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to decode enrollments")
	}
	return c.JSON(enrolled)
}

// Create runs the enrollment flow: seat decrement, enrollment record,
// cart cleanup. The response carries the three sub-results.
func (h *EnrollmentHandler) Create(c *fiber.Ctx) error {
	var payload bson.M
	if err := c.BodyParser(&payload); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	courseHex, _ := payload["courseId"].(string)
	courseID, err := primitive.ObjectIDFromHex(courseHex)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course id")
	}
	cartHex, _ := payload["cartId"].(string)
	cartID, err := primitive.ObjectIDFromHex(cartHex)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart id")
	}

	result, err := h.enroller.Enroll(c.Context(), courseID, cartID, payload)
	if errors.Is(err, services.ErrCourseNotFound) {
		return jsonError(c, h.policy.NoCourse(), "no course available")
	}
	if errors.Is(err, services.ErrNoSeats) {
		return jsonError(c, h.policy.NoSeat(), "no seat available")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to enroll student")
	}

	return c.JSON(fiber.Map{
		"decrementedSeatInCourse": result.Course,
		"insertEnrollment":        insertedResult(result.EnrollmentID),
		"deleteFromCart":          fiber.Map{"acknowledged": true, "deletedCount": result.CartRemoved},
	})
}
