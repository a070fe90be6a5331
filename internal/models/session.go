package models

import "time"

// Session is the database row shape for the sessions table.
type Session struct {
	SessionID        string    `db:"session_id"`
	UserID           string    `db:"user_id"`
	AccessToken      string    `db:"access_token"`
	AccessExpiresAt  time.Time `db:"access_expires_at"`
	RefreshToken     string    `db:"refresh_token"`
	RefreshExpiresAt time.Time `db:"refresh_expires_at"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
