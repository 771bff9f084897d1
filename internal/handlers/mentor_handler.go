package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type MentorHandler struct {
	mentors MentorStore
}

func NewMentorHandler(mentors MentorStore) *MentorHandler {
	return &MentorHandler{mentors: mentors}
}

// List returns every mentor profile. Public.
func (h *MentorHandler) List(c *fiber.Ctx) error {
	mentors, err := h.mentors.List(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch mentors")
	}
	return c.JSON(mentors)
}

type mentorUpdateRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	CourseTaken int      `json:"courseTaken"`
	Courses     []string `json:"courses"`
	Details     string   `json:"details"`
	Image       string   `json:"image"`
}

// Upsert replaces a mentor profile keyed by the email query parameter.
// An empty image keeps whatever image is already stored.
func (h *MentorHandler) Upsert(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email query is required")
	}
	var body mentorUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	set := bson.M{
		"name":          body.Name,
		"email":         body.Email,
		"classes_taken": body.CourseTaken,
		"classes":       body.Courses,
		"details":       body.Details,
	}
	if body.Image != "" {
		set["image"] = body.Image
	}

	res, err := h.mentors.Upsert(c.Context(), email, set)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update mentor profile")
	}
	return c.JSON(updateResult(res))
}
