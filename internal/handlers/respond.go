package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// jsonError writes the API's uniform error body.
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": true, "message": message})
}

// StatusPolicy picks the status code for denials and conflicts. The
// default is the standardized mapping (409 conflict, 403 ownership);
// Legacy restores the original API's codes for clients pinned to them.
type StatusPolicy struct {
	Legacy bool
}

// Conflict is the status for a duplicate create.
func (p StatusPolicy) Conflict() int {
	if p.Legacy {
		return fiber.StatusForbidden
	}
	return fiber.StatusConflict
}

// Ownership is the status for a self-access mismatch. legacyStatus is
// what the original API answered on that particular route (it used 401
// and 403 interchangeably).
func (p StatusPolicy) Ownership(legacyStatus int) int {
	if p.Legacy {
		return legacyStatus
	}
	return fiber.StatusForbidden
}

// NoCourse is the status when an enrollment references a missing course.
func (p StatusPolicy) NoCourse() int {
	if p.Legacy {
		return fiber.StatusBadRequest
	}
	return fiber.StatusNotFound
}

// NoSeat is the status when a course is out of capacity.
func (p StatusPolicy) NoSeat() int {
	if p.Legacy {
		return fiber.StatusBadRequest
	}
	return fiber.StatusConflict
}

// Acknowledgment bodies mirroring the store driver's result shapes.

func insertResult(res *mongo.InsertOneResult) fiber.Map {
	return insertedResult(res.InsertedID)
}

func insertedResult(id interface{}) fiber.Map {
	return fiber.Map{"acknowledged": true, "insertedId": id}
}

func updateResult(res *mongo.UpdateResult) fiber.Map {
	m := fiber.Map{
		"acknowledged":  true,
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	}
	if res.UpsertedID != nil {
		m["upsertedId"] = res.UpsertedID
		m["upsertedCount"] = res.UpsertedCount
	}
	return m
}

func deleteResult(res *mongo.DeleteResult) fiber.Map {
	return fiber.Map{"acknowledged": true, "deletedCount": res.DeletedCount}
}
