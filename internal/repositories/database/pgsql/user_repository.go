package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	"github.com/contactvault/backend/internal/models"
	"github.com/contactvault/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const (
	selectUserFields = `
		user_id, name, email, password_hash, photo_url, auth_provider,
		reset_token_hash, reset_token_expires_at, created_at, updated_at
	`

	insertUserQuery = `
		INSERT INTO users (user_id, name, email, password_hash, photo_url, auth_provider, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	findUserByIDQuery = `
		SELECT ` + selectUserFields + `
		FROM users
		WHERE user_id = $1;
	`

	findUserByEmailQuery = `
		SELECT ` + selectUserFields + `
		FROM users
		WHERE email = $1;
	`

	updateUserQuery = `
		UPDATE users
		SET name = $1, email = $2, photo_url = $3, updated_at = $4
		WHERE user_id = $5;
	`

	updatePasswordQuery = `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE user_id = $2;
	`

	setResetTokenQuery = `
		UPDATE users
		SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = NOW()
		WHERE user_id = $3;
	`

	// The WHERE clause is the single-use guard: of two concurrent consumers
	// only one sees a matching, unexpired row.
	consumeResetTokenQuery = `
		UPDATE users
		SET password_hash = $1, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE reset_token_hash = $2 AND reset_token_expires_at > NOW()
		RETURNING user_id;
	`

	deleteUserSessionsQuery = `
		DELETE FROM sessions WHERE user_id = $1;
	`
)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.Pool.Exec(ctx, insertUserQuery,
		m.UserID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.PhotoURL,
		m.AuthProvider,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, findUserByIDQuery, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, findUserByEmailQuery, email)
}

func (r *PgxUserRepository) findUser(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.PhotoURL,
		&m.AuthProvider,
		&m.ResetTokenHash,
		&m.ResetTokenExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	cmdTag, err := r.Pool.Exec(ctx, updateUserQuery,
		m.Name,
		m.Email,
		m.PhotoURL,
		m.UpdatedAt,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	cmdTag, err := r.Pool.Exec(ctx, updatePasswordQuery, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, setResetTokenQuery, tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// ConsumeResetToken runs the password update and the session purge as one
// transaction so that a partial failure is never observable: either the
// password changes and every session dies, or nothing happens at all.
func (r *PgxUserRepository) ConsumeResetToken(ctx context.Context, tokenHash string, newPasswordHash string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var userID string
	err = tx.QueryRow(ctx, consumeResetTokenQuery, newPasswordHash, tokenHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrInvalidOrExpiredResetToken
		}
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}

	if _, err := tx.Exec(ctx, deleteUserSessionsQuery, userID); err != nil {
		return "", fmt.Errorf("failed to delete sessions during reset: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return userID, nil
}
