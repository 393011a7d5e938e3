package middleware

import (
	"context"
	"strings"

	"quizdeck/internal/domain"
	"quizdeck/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	AdminSessionKey     = "adminSession" // Key for storing the session in fiber.Ctx locals
)

// TokenValidator verifies a bearer token and returns the admin it was issued to.
type TokenValidator interface {
	ValidateJWT(ctx context.Context, tokenString string) (*domain.AdminSession, error)
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token and stores the admin session in the context.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "INVALID_TOKEN", "Token is empty")
		}

		session, err := validator.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("Rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			return unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Locals(AdminSessionKey, session)
		return c.Next()
	}
}

// SessionFromContext returns the admin session stored by Protected, or nil.
func SessionFromContext(c *fiber.Ctx) *domain.AdminSession {
	session, _ := c.Locals(AdminSessionKey).(*domain.AdminSession)
	return session
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
