package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Manual mock for middleware.TokenValidator
type ManualMockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*domain.AdminSession, error)
}

func (m *ManualMockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*domain.AdminSession, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func TestProtected(t *testing.T) {
	validSession := &domain.AdminSession{Username: "admin", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name             string
		authHeader       string
		validate         func(ctx context.Context, tokenString string) (*domain.AdminSession, error)
		expectedStatus   int
		expectedCode     string
		expectNextCalled bool
	}{
		{
			name:           "No Auth Header",
			authHeader:     "",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "MISSING_AUTH_HEADER",
		},
		{
			name:           "Wrong Scheme",
			authHeader:     "Basic YWRtaW46c2VjcmV0",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_AUTH_SCHEME",
		},
		{
			name:           "Bearer No Token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer expired_token",
			validate: func(ctx context.Context, tokenString string) (*domain.AdminSession, error) {
				return nil, errors.New("token is expired")
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:       "Valid Token",
			authHeader: "Bearer good_token",
			validate: func(ctx context.Context, tokenString string) (*domain.AdminSession, error) {
				if tokenString != "good_token" {
					return nil, errors.New("unexpected token")
				}
				return validSession, nil
			},
			expectedStatus:   fiber.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			validator := &ManualMockTokenValidator{ValidateJWTFunc: tc.validate}

			nextHandlerCalled := false
			var session *domain.AdminSession
			app.Get("/admin", middleware.Protected(validator), func(c *fiber.Ctx) error {
				nextHandlerCalled = true
				session = middleware.SessionFromContext(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectNextCalled, nextHandlerCalled)

			if tc.expectNextCalled {
				assert.Equal(t, validSession, session)
				return
			}
			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.expectedCode, body.Code)
			assert.Equal(t, fiber.StatusUnauthorized, body.Status)
		})
	}
}

func TestSessionFromContext_Absent(t *testing.T) {
	app := fiber.New()
	var session *domain.AdminSession
	app.Get("/", func(c *fiber.Ctx) error {
		session = middleware.SessionFromContext(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Nil(t, session)
}
