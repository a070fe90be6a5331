package domain

import "time"

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an account holder in the domain.
// PasswordHash is nil for OAuth-only accounts; such users can never pass
// password authentication.
type User struct {
	UserID       string       `json:"userID"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash *string      `json:"-"`
	PhotoURL     *string      `json:"photoURL,omitempty"`
	AuthProvider AuthProvider `json:"authProvider"`

	// Password reset state, embedded in the user record. Only the SHA256
	// hash of the reset token is ever stored; both fields are cleared
	// atomically with the password update on consumption.
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
