package services

import (
	"context"
	"time"

	"github.com/contactvault/backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token issuance and verification.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT embedding the user id and an
	// expiry claim, returning the token and its expiry time.
	GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error)

	// GenerateRefreshToken creates a high-entropy opaque refresh token and
	// its expiry time. Uniqueness is enforced by the session store at
	// persistence time.
	GenerateRefreshToken(ctx context.Context) (string, time.Time, error)

	// VerifyAccessToken checks signature and expiry only and returns the
	// subject user ID. It does NOT consult the session store; that check is
	// layered on top by the authentication gate.
	VerifyAccessToken(ctx context.Context, tokenString string) (string, error)
}

// SessionSvcFacade orchestrates session creation, rotation and invalidation.
type SessionSvcFacade interface {
	// CreateSession issues a token pair and persists a new session for the
	// user. The caller is responsible for setting the refresh token as an
	// HTTP-only cookie.
	CreateSession(ctx context.Context, userID string) (*domain.Session, error)

	// RotateSession exchanges a refresh token for a brand-new token pair,
	// updating the session in place. The old refresh token is invalid the
	// instant the rotation lands; of two concurrent calls with the same
	// token, exactly one succeeds.
	RotateSession(ctx context.Context, refreshToken string) (*domain.Session, error)

	// DeleteSession removes the session matching the refresh token.
	// Idempotent: a missing session is not an error.
	DeleteSession(ctx context.Context, refreshToken string) error

	// DeleteAllUserSessions removes every session of the user.
	DeleteAllUserSessions(ctx context.Context, userID string) error

	// FindSessionByAccessToken returns the live session backing an access
	// token, or apperrors.ErrNoActiveSession.
	FindSessionByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error)
}

// PasswordResetSvcFacade implements the email-based password reset flow.
type PasswordResetSvcFacade interface {
	// RequestReset generates a one-time reset token for the account with the
	// given email and sends it by email. It never reveals whether the
	// account exists: the outcome is identical for unknown emails and for
	// delivery failures.
	RequestReset(ctx context.Context, email string) error

	// ConsumeReset verifies the presented token, sets the new password and
	// invalidates all sessions of the user as one logical unit. The token is
	// single-use.
	ConsumeReset(ctx context.Context, token string, newPassword string) error
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random CSRF token for the flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for login.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken validates an ID token string from Google and
	// returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
