package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/secopslab/incidentdb/auth"
	"github.com/secopslab/incidentdb/models"
)

// Password length bounds RegisterUser accepts. bcrypt cannot hash more
// than 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrUserExists      = errors.New("username already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = auth.ErrInvalidPassword
	ErrInvalidUser     = errors.New("invalid user")
)

// RegisterUser creates a user with a bcrypt-hashed password.
// An empty role defaults to models.RoleUser.
func RegisterUser(ctx context.Context, db *sql.DB, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidUser, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidUser, MaxPasswordLength)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !slices.Contains(models.UserRoles, role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, role)
	}

	var exists int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = $1", username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists > 0 {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hash, Role: role, CreatedAt: time.Now().UTC()}
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, username, hash, role, user.CreatedAt).Scan(&user.ID)
	if isUniqueViolation(err) {
		// Lost a race with a concurrent registration
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// LoginUser verifies credentials and returns the user.
func LoginUser(ctx context.Context, db *sql.DB, username, password string) (*models.User, error) {
	user, err := GetUser(ctx, db, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser looks a user up by username.
func GetUser(ctx context.Context, db *sql.DB, username string) (*models.User, error) {
	var user models.User
	err := db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
