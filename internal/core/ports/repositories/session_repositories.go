package repositories

import (
	"context"
	"time"

	"github.com/contactvault/backend/internal/core/domain"
)

// SessionRepository defines data access for authentication sessions.
type SessionRepository interface {
	// CreateSession persists a new session. Returns apperrors.ErrDuplicate on
	// a refresh-token collision so the caller can retry with a fresh token.
	CreateSession(ctx context.Context, session domain.Session) error

	// FindSessionByAccessToken retrieves the session whose stored access
	// token equals the presented token exactly AND whose access expiry is
	// still in the future. Absence means the token has no live session,
	// regardless of its signature validity.
	FindSessionByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error)

	// FindSessionByRefreshToken retrieves the session holding an unexpired
	// refresh token, or apperrors.ErrInvalidRefreshToken. Used to identify the
	// session owner before a rotation; the rotation itself remains a single
	// conditional update.
	FindSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)

	// RotateSession replaces the token pair of the session identified by
	// refreshToken in a single conditional update. The old refresh token
	// ceases to be valid the instant it is replaced; of two concurrent
	// rotations with the same token, exactly one succeeds and the loser gets
	// apperrors.ErrInvalidRefreshToken.
	RotateSession(ctx context.Context, refreshToken string, newAccessToken string, newAccessExpiresAt time.Time, newRefreshToken string, newRefreshExpiresAt time.Time) (*domain.Session, error)

	// DeleteSessionByRefreshToken removes the matching session. Absence of a
	// match is not an error; logout is idempotent.
	DeleteSessionByRefreshToken(ctx context.Context, refreshToken string) error

	// DeleteSessionsByUserID removes every session owned by the user,
	// forcing re-login everywhere.
	DeleteSessionsByUserID(ctx context.Context, userID string) error

	// DeleteExpiredSessions removes sessions whose refresh expiry has passed.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}
