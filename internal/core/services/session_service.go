package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/google/uuid"
)

// sessionService implements SessionSvcFacade. It pairs the token service
// (which mints tokens) with the session repository (which owns their
// liveness).
type sessionService struct {
	sessionRepo portsrepo.SessionRepository
	tokenSvc    portssvc.TokenSvcFacade
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo portsrepo.SessionRepository, tokenSvc portssvc.TokenSvcFacade) portssvc.SessionSvcFacade {
	return &sessionService{
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) CreateSession(ctx context.Context, userID string) (*domain.Session, error) {
	// One retry on a refresh-token collision. With 256 bits of entropy a
	// collision is effectively a broken RNG; two in a row is an error.
	for attempt := 0; attempt < 2; attempt++ {
		session, err := s.buildSession(ctx, userID)
		if err != nil {
			return nil, err
		}

		err = s.sessionRepo.CreateSession(ctx, *session)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}

		middleware.GetLoggerFromCtx(ctx).Warn("Refresh token collision on session create, retrying",
			slog.String("user_id", userID),
		)
	}

	return nil, fmt.Errorf("failed to create session: repeated refresh token collision")
}

func (s *sessionService) buildSession(ctx context.Context, userID string) (*domain.Session, error) {
	accessToken, accessExpiry, err := s.tokenSvc.GenerateAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry, err := s.tokenSvc.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &domain.Session{
		SessionID:        uuid.NewString(),
		UserID:           userID,
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *sessionService) RotateSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	// Look up the session owner first so the replacement JWT carries the
	// right subject. The swap itself is a single conditional update keyed on
	// the old refresh token, so of two concurrent rotations with the same
	// token exactly one wins; a stale read here just makes the loser fail at
	// the update.
	session, err := s.sessionRepo.FindSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	newAccessToken, newAccessExpiry, err := s.tokenSvc.GenerateAccessToken(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	newRefreshToken, newRefreshExpiry, err := s.tokenSvc.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, err
	}

	rotated, err := s.sessionRepo.RotateSession(ctx, refreshToken, newAccessToken, newAccessExpiry, newRefreshToken, newRefreshExpiry)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRefreshToken) {
			// Unknown, expired, or already rotated by a concurrent request.
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return rotated, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		// Nothing to revoke; logout without a cookie is a no-op.
		return nil
	}
	if err := s.sessionRepo.DeleteSessionByRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *sessionService) DeleteAllUserSessions(ctx context.Context, userID string) error {
	if err := s.sessionRepo.DeleteSessionsByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (s *sessionService) FindSessionByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error) {
	session, err := s.sessionRepo.FindSessionByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			return nil, apperrors.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to find session by access token: %w", err)
	}
	// The store query filters on its own clock; re-check against the
	// process clock so the two never disagree on liveness.
	if session.IsAccessExpired() {
		return nil, apperrors.ErrNoActiveSession
	}
	return session, nil
}
