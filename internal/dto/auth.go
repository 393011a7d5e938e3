package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest is the admin login body.
// @Description Admin credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse carries the bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChangePasswordRequest is the change-password body.
// @Description Current and new admin password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
	NewPassword     string `json:"newPassword" validate:"required,max=128"`
}

// AuthClaims are the JWT claims issued to admins.
type AuthClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
