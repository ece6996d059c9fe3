package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth verifies the bearer token and copies its claims into Locals.
// Token issuance happens elsewhere; only HMAC-signed tokens are accepted.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Read the token from the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token not found"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Parse and validate
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token is invalid or expired"})
		}

		// 3. Store the caller for handlers
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token is invalid or expired"})
		}
		if _, ok := claims["user_id"].(float64); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has no user_id"})
		}
		c.Locals("user_id", claims["user_id"])
		c.Locals("role", claims["role"])
		c.Locals("company_id", claims["company_id"])

		return c.Next()
	}
}
