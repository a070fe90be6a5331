package repositories

import (
	"context"
	"time"

	"github.com/contactvault/backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their lowercase-normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email unique constraint is violated.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates name, email and photo URL of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

// UserResetTokenManager defines operations on the reset-token fields embedded
// in the user record.
type UserResetTokenManager interface {
	// SetResetToken stores the reset token hash and its expiry on the user.
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken atomically sets the new password hash and clears both
	// reset-token fields for the user whose stored hash matches tokenHash and
	// whose expiry is still in the future. It also removes every session the
	// user owns, in the same transaction. Returns the user ID on success, or
	// apperrors.ErrInvalidOrExpiredResetToken when no row matched — including
	// when a concurrent consumer won the race.
	ConsumeResetToken(ctx context.Context, tokenHash string, newPasswordHash string) (string, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserResetTokenManager
}
