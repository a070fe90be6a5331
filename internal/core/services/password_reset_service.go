package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/contactvault/backend/internal/platform/config"
	"github.com/contactvault/backend/internal/platform/email"
	"github.com/contactvault/backend/internal/utils"
	"github.com/sethvargo/go-retry"
)

// passwordResetService implements the email-based password reset flow. The
// plaintext token only ever exists in the outbound email; the store holds its
// SHA-256 hash on the user row.
type passwordResetService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	sender   email.Sender
}

// NewPasswordResetService creates a new instance of passwordResetService.
func NewPasswordResetService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, sender email.Sender) portssvc.PasswordResetSvcFacade {
	return &passwordResetService{
		cfg:      cfg,
		userRepo: userRepo,
		sender:   sender,
	}
}

var _ portssvc.PasswordResetSvcFacade = (*passwordResetService)(nil)

// RequestReset never reports whether the account exists. Lookup misses and
// delivery failures are logged server side and swallowed; the handler returns
// the same generic acknowledgement either way.
func (s *passwordResetService) RequestReset(ctx context.Context, emailAddr string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.ResetTokenExpiryDuration)
	if err := s.userRepo.SetResetToken(ctx, user.UserID, utils.HashToken(token), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Retry transient delivery failures a couple of times before giving up.
	// A final failure is logged but not surfaced: the response must not leak
	// whether an email was actually sent.
	backoff := retry.WithMaxRetries(3, retry.NewConstant(2*time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if sendErr := s.sender.SendPasswordReset(ctx, user.Email, token); sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to deliver password reset email",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	logger.Info("Password reset email sent", slog.String("user_id", user.UserID))
	return nil
}

// ConsumeReset verifies the token, sets the new password and clears both
// reset fields and every session of the user in one transaction at the
// repository layer. The token is single-use: a concurrent consumer losing the
// race gets the same error as a bad token.
func (s *passwordResetService) ConsumeReset(ctx context.Context, token string, newPassword string) error {
	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	userID, err := s.userRepo.ConsumeResetToken(ctx, utils.HashToken(token), newHash)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidOrExpiredResetToken) {
			return apperrors.ErrInvalidOrExpiredResetToken
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Password reset completed, all sessions invalidated",
		slog.String("user_id", userID),
	)
	return nil
}
