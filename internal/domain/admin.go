package domain

import (
	"strings"
	"time"
)

// Admin is an account allowed to author quizzes. PasswordHash is a bcrypt hash.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AdminSession is the authenticated identity carried through admin operations.
// It is produced from a verified bearer token and passed explicitly to services.
type AdminSession struct {
	Username  string
	ExpiresAt time.Time
}

// NormalizeUsername trims surrounding whitespace from a login name.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
