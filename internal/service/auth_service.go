package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMessage = "Invalid username or password"

// ErrInvalidJWTToken wraps every token rejection from ValidateJWT.
var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for admin authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*domain.AdminSession, error)
	ChangePassword(ctx context.Context, session *domain.AdminSession, currentPassword, newPassword string) error
	// UpsertAdmin creates the admin or resets its password. created reports which happened.
	UpsertAdmin(ctx context.Context, username, password string) (created bool, err error)
}

type authServiceImpl struct {
	adminRepo  domain.AdminRepository
	appConfig  *config.Config
	bcryptCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(adminRepo domain.AdminRepository, appConfig *config.Config) (AuthService, error) {
	if appConfig.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		adminRepo:  adminRepo,
		appConfig:  appConfig,
		bcryptCost: bcrypt.DefaultCost,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	appLogger := logger.Get()
	username = domain.NormalizeUsername(username)

	admin, err := s.adminRepo.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up admin", err)
	}
	if admin == nil {
		// Spend the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummyPasswordHash(), []byte(password))
		appLogger.Info("Admin login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
		return nil, domain.NewUnauthorizedError(invalidCredentialsMessage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		appLogger.Info("Admin login rejected", zap.String("username", username), zap.String("reason", "wrong password"))
		return nil, domain.NewUnauthorizedError(invalidCredentialsMessage)
	}

	token, expiresAt, err := s.createJWT(admin.Username)
	if err != nil {
		return nil, domain.NewInternalError("failed to issue token", err)
	}

	appLogger.Info("Admin logged in", zap.String("username", admin.Username))
	return &dto.LoginResponse{
		Token:     token,
		Username:  admin.Username,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) createJWT(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.appConfig.JWT.TTL)
	claims := &dto.AuthClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.appConfig.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*domain.AdminSession, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidJWTToken
	}

	session := &domain.AdminSession{Username: claims.Username}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, session *domain.AdminSession, currentPassword, newPassword string) error {
	if session == nil {
		return domain.NewUnauthorizedError("Authentication required")
	}
	if err := s.checkPasswordLength("newPassword", newPassword); err != nil {
		return err
	}

	admin, err := s.adminRepo.GetAdminByUsername(ctx, session.Username)
	if err != nil {
		return domain.NewInternalError("failed to look up admin", err)
	}
	if admin == nil {
		return domain.NewNotFoundError("Admin not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		logger.Get().Info("Password change rejected", zap.String("username", admin.Username))
		return domain.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return domain.NewInternalError("failed to hash password", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, admin.Username, string(hash)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("Admin not found")
		}
		return domain.NewInternalError("failed to update password", err)
	}

	logger.Get().Info("Admin password changed", zap.String("username", admin.Username))
	return nil
}

func (s *authServiceImpl) UpsertAdmin(ctx context.Context, username, password string) (bool, error) {
	username = domain.NormalizeUsername(username)
	var errs domain.ValidationErrors
	if username == "" {
		errs = append(errs, domain.NewMissingFieldError("username"))
	}
	if err := s.checkPasswordLength("password", password); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			errs = append(errs, verrs...)
		}
	}
	if err := errs.ErrOrNil(); err != nil {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return false, domain.NewInternalError("failed to hash password", err)
	}

	existing, err := s.adminRepo.GetAdminByUsername(ctx, username)
	if err != nil {
		return false, domain.NewInternalError("failed to look up admin", err)
	}
	if existing != nil {
		if err := s.adminRepo.UpdatePassword(ctx, username, string(hash)); err != nil {
			return false, domain.NewInternalError("failed to update password", err)
		}
		logger.Get().Info("Admin password reset", zap.String("username", username))
		return false, nil
	}

	if err := s.adminRepo.CreateAdmin(ctx, &domain.Admin{Username: username, PasswordHash: string(hash)}); err != nil {
		return false, err
	}
	logger.Get().Info("Admin created", zap.String("username", username))
	return true, nil
}

func (s *authServiceImpl) checkPasswordLength(field, password string) error {
	minLen := s.appConfig.Admin.MinPasswordLength
	if len(password) < minLen {
		return domain.ValidationErrors{{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("Password must be at least %d characters", minLen),
		}}
	}
	return nil
}

func (s *authServiceImpl) dummyPasswordHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("quizdeck-unused-password"), s.bcryptCost)
		if err != nil {
			logger.Get().Error("Failed to prepare dummy password hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
