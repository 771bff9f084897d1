package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUnknownUser reports that no user document exists for an email.
var ErrUnknownUser = errors.New("unknown user")

// RoleFinder resolves the stored role for an email.
type RoleFinder interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

type mongoRoleFinder struct {
	users *mongo.Collection
}

// NewRoleFinder builds a RoleFinder over the users collection.
func NewRoleFinder(users *mongo.Collection) RoleFinder {
	return &mongoRoleFinder{users: users}
}

func (f *mongoRoleFinder) RoleByEmail(ctx context.Context, email string) (string, error) {
	var user struct {
		Role string `bson:"role"`
	}
	err := f.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrUnknownUser
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// RequireRole gates a route on the caller's stored role. A missing user
// or a role mismatch is an explicit 403, never a nil dereference.
// Compose after RequireAuth.
func RequireRole(finder RoleFinder, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := CallerEmail(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "unauthorized access"})
		}

		stored, err := finder.RoleByEmail(c.Context(), email)
		if errors.Is(err, ErrUnknownUser) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": true, "message": "forbidden access"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "failed to verify role"})
		}
		if stored != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": true, "message": "forbidden access"})
		}
		return c.Next()
	}
}
