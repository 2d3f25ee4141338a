package middleware

import (
	"fmt"
	"os"
	"strings"

	"care-connect/constants"
	"care-connect/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAdmin gates destructive administrative endpoints (bulk clear, status
// override, beneficiary add) behind a JWT with an admin role claim.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearerToken(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Success: false,
				Message: err.Error(),
			})
		}

		role, _ := claims[constants.ClaimRole].(string)
		if role != constants.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Success: false,
				Message: "Admin privileges required",
			})
		}

		c.Locals("user", map[string]interface{}(claims))
		return c.Next()
	}
}

func parseBearerToken(authHeader string) (jwt.MapClaims, error) {
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, fmt.Errorf("invalid token format")
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
