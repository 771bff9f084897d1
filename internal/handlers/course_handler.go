package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseHandler struct {
	courses *mongo.Collection
	pending *mongo.Collection
}

func NewCourseHandler(courses, pending *mongo.Collection) *CourseHandler {
	return &CourseHandler{courses: courses, pending: pending}
}

// List returns every published course. Public.
func (h *CourseHandler) List(c *fiber.Ctx) error {
	cursor, err := h.courses.Find(c.Context(), bson.M{})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch courses")
	}
	defer cursor.Close(c.Context())

	courses := []bson.M{}
	if err := cursor.All(c.Context(), &courses); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to decode courses")
	}
	return c.JSON(courses)
}

// Promote approves a pending course: the document moves wholesale into
// the courses collection and is removed from the pending one.
func (h *CourseHandler) Promote(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course id")
	}

	var pendingCourse bson.M
	err = h.pending.FindOne(c.Context(), bson.M{"_id": id}).Decode(&pendingCourse)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch pending course")
	}

	added, err := h.courses.InsertOne(c.Context(), pendingCourse)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to approve course")
	}
	removed, err := h.pending.DeleteOne(c.Context(), bson.M{"_id": id})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "course approved but pending cleanup failed")
	}

	return c.JSON(fiber.Map{
		"addedToCourses":    insertResult(added),
		"deleteFromPending": deleteResult(removed),
	})
}

type courseUpdateRequest struct {
	CourseName    string  `json:"courseName"`
	MentorName    string  `json:"mentorName"`
	AvailableSeat int     `json:"availableSeat"`
	CourseFee     float64 `json:"courseFee"`
	Image         string  `json:"image"`
	Details       string  `json:"details"`
}

// Upsert replaces a course's fields, inserting the document when absent.
func (h *CourseHandler) Upsert(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course id")
	}
	var body courseUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.AvailableSeat < 0 {
		return jsonError(c, fiber.StatusBadRequest, "available seats cannot be negative")
	}

	update := bson.M{"$set": bson.M{
		"course_name":     body.CourseName,
		"mentor_name":     body.MentorName,
		"available_seats": body.AvailableSeat,
		"course_fee":      body.CourseFee,
		"image":           body.Image,
		"details":         body.Details,
	}}
	res, err := h.courses.UpdateOne(c.Context(), bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update course")
	}
	return c.JSON(updateResult(res))
}

// Delete removes a published course.
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid course id")
	}

	res, err := h.courses.DeleteOne(c.Context(), bson.M{"_id": id})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete course")
	}
	return c.JSON(deleteResult(res))
}
