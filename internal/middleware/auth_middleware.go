package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// EmailKey is the locals key under which RequireAuth stores the verified
// caller email for downstream handlers.
const EmailKey = "email"

// RequireAuth validates the Bearer token and stores the claim email in
// the request locals.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "unauthorized access"})
		}

		tokenString := strings.TrimPrefix(authorization, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "unauthorized access"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "unauthorized access"})
		}
		email, ok := claims["email"].(string)
		if !ok || email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "unauthorized access"})
		}

		c.Locals(EmailKey, email)
		return c.Next()
	}
}

// CallerEmail returns the verified email set by RequireAuth, or "" when
// the route was not authenticated.
func CallerEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(EmailKey).(string)
	return email
}
