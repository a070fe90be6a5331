package services

import (
	"context"

	"github.com/contactvault/backend/internal/core/domain"
	"github.com/contactvault/backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email (normalized to lowercase).
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new local-provider user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateOAuthUser returns the existing user with the given email, or
	// creates a new OAuth-only user (no password hash) when none exists.
	CreateOAuthUser(ctx context.Context, name, email, picture string, provider domain.AuthProvider) (*domain.User, error)

	// UpdateProfile applies a partial profile update for the user.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	// OAuth-only users (nil password hash) always fail.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// ChangePassword verifies the current password, stores the new hash and
	// invalidates every session of the user.
	ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
