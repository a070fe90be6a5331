package models

import (
	"database/sql"
	"time"
)

// User is the database row shape for the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	PhotoURL     sql.NullString `db:"photo_url"`
	AuthProvider string         `db:"auth_provider"`

	ResetTokenHash      sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiresAt sql.NullTime   `db:"reset_token_expires_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
