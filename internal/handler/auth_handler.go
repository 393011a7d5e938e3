package handler

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Login exchanges admin credentials for a bearer token.
// @Summary Admin login
// @Description Verifies the admin username and password and issues a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Missing username or password"
// @Failure 401 {object} middleware.ErrorResponse "Invalid username or password"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.Struct(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ChangePassword replaces the password of the signed-in admin.
// @Summary Change admin password
// @Description Verifies the current password and stores a new one.
// @Tags auth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "New password too short"
// @Failure 401 {object} middleware.ErrorResponse "Missing token or wrong current password"
// @Failure 404 {object} middleware.ErrorResponse "Admin not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /admin/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return domain.NewUnauthorizedError("Authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.Struct(req); len(errs) > 0 {
		return errs
	}

	if err := h.authService.ChangePassword(c.UserContext(), session, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Password updated"})
}
