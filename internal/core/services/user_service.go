package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/contactvault/backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements UserSvcFacade on top of the user repository.
// ChangePassword additionally needs the session repository so that a password
// change revokes every live session of the user.
type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	sessionRepo portsrepo.SessionRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, sessionRepo portsrepo.SessionRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// normalizeEmail lowercases and trims the address. Every path that touches an
// email (register, login, OAuth, reset) goes through this so two spellings of
// the same address never become two accounts.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: &hash,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, fmt.Errorf("failed to save new user: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email, picture string, provider domain.AuthProvider) (*domain.User, error) {
	email = normalizeEmail(email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		// Account already exists; an OAuth login on a matching email signs
		// into it rather than creating a duplicate.
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		AuthProvider: provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if picture != "" {
		user.PhotoURL = &picture
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent first login; the row is there now.
			return s.userRepo.FindUserByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to save OAuth user: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("OAuth user created",
		slog.String("user_id", user.UserID),
		slog.String("provider", string(provider)),
	)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure as a wrong password; callers can't probe for accounts.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user for authentication: %w", err)
	}

	// OAuth-only accounts have no password hash and can never pass a
	// password check.
	if user.PasswordHash == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewBadRequestError("No fields to update")
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user for profile update: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.PhotoURL != nil {
		user.PhotoURL = req.PhotoURL
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to find user for password change: %w", err)
	}

	if user.PasswordHash == nil {
		return apperrors.NewBadRequestError("This account signs in with an external provider and has no password")
	}

	if !utils.CheckPasswordHash(currentPassword, *user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// A password change signs the user out everywhere. The caller issues a
	// fresh session for the current device afterwards.
	if err := s.sessionRepo.DeleteSessionsByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate sessions after password change: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Password changed, all sessions invalidated", slog.String("user_id", userID))
	return nil
}
