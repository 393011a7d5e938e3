package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	insertAdminQuery = `INSERT INTO admins (id, username, password_hash, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`

	selectAdminByUsernameQuery = `SELECT
		id "id",
		username "username",
		password_hash "password_hash",
		created_at "created_at",
		updated_at "updated_at"
	FROM admins
	WHERE username = ?`

	updateAdminPasswordQuery = `UPDATE admins SET password_hash = ?, updated_at = ? WHERE username = ?`
)

// AdminDatabaseAdapter implements domain.AdminRepository using sqlx.
type AdminDatabaseAdapter struct {
	db *sqlx.DB
}

func NewAdminDatabaseAdapter(db *sqlx.DB) domain.AdminRepository {
	return &AdminDatabaseAdapter{db: db}
}

// CreateAdmin inserts a new admin. A taken username yields a conflict error.
func (a *AdminDatabaseAdapter) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	if admin == nil {
		return fmt.Errorf("cannot create nil admin")
	}
	now := util.NowUTC()
	admin.ID = util.NewULID()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(insertAdminQuery),
		admin.ID, admin.Username, admin.PasswordHash, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("admin %q already exists", admin.Username))
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetAdminByUsername returns the admin or nil when the username is unknown.
func (a *AdminDatabaseAdapter) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Admin
	if err := exec.GetContext(ctx, &m, exec.Rebind(selectAdminByUsernameQuery), username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return toDomainAdmin(&m), nil
}

// UpdatePassword replaces the stored hash. Returns sql.ErrNoRows for an unknown username.
func (a *AdminDatabaseAdapter) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(updateAdminPasswordQuery), passwordHash, util.NowUTC(), username)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	return expectAffected(result)
}
