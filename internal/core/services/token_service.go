package services

import (
	"context"
	"fmt"
	"time"

	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/platform/config"
	"github.com/contactvault/backend/internal/utils"
)

// tokenService implements TokenSvcFacade for JWT and refresh token issuance.
// It only needs the application configuration for secrets and expiry times.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user ID.
func (s *tokenService) GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token. 32 bytes of
// randomness gives a 64-character hex string; global uniqueness is enforced
// by the session store's unique index at insert time.
func (s *tokenService) GenerateRefreshToken(ctx context.Context) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate secure random string for refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	return rawRefreshToken, expiryTime, nil
}

// VerifyAccessToken checks signature and expiry and returns the subject user
// ID. Session liveness is checked separately by the authentication gate.
func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
