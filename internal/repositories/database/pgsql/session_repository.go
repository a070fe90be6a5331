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

type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(db *pgxpool.Pool) portsrepo.SessionRepository {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SessionRepository = (*PgxSessionRepository)(nil)

const (
	selectSessionFields = `
		session_id, user_id, access_token, access_expires_at,
		refresh_token, refresh_expires_at, created_at, updated_at
	`

	insertSessionQuery = `
		INSERT INTO sessions (session_id, user_id, access_token, access_expires_at, refresh_token, refresh_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	// Exact access-token match plus unexpired access expiry. This lookup is
	// the source of truth the authentication gate layers on top of the JWT
	// signature check.
	findSessionByAccessTokenQuery = `
		SELECT ` + selectSessionFields + `
		FROM sessions
		WHERE access_token = $1 AND access_expires_at > NOW();
	`

	findSessionByRefreshTokenQuery = `
		SELECT ` + selectSessionFields + `
		FROM sessions
		WHERE refresh_token = $1 AND refresh_expires_at > NOW();
	`

	// A single conditional update keyed on the old refresh token. Two
	// concurrent rotations with the same token race on this statement and
	// exactly one sees the matching row.
	rotateSessionQuery = `
		UPDATE sessions
		SET access_token = $2, access_expires_at = $3,
		    refresh_token = $4, refresh_expires_at = $5,
		    updated_at = NOW()
		WHERE refresh_token = $1 AND refresh_expires_at > NOW()
		RETURNING ` + selectSessionFields

	deleteSessionByRefreshTokenQuery = `
		DELETE FROM sessions WHERE refresh_token = $1;
	`

	deleteSessionsByUserIDQuery = `
		DELETE FROM sessions WHERE user_id = $1;
	`

	deleteExpiredSessionsQuery = `
		DELETE FROM sessions WHERE refresh_expires_at < $1;
	`
)

func (r *PgxSessionRepository) CreateSession(ctx context.Context, session domain.Session) error {
	m := mapping.ToModelSession(session)
	_, err := r.Pool.Exec(ctx, insertSessionQuery,
		m.SessionID,
		m.UserID,
		m.AccessToken,
		m.AccessExpiresAt,
		m.RefreshToken,
		m.RefreshExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error) {
	row := r.Pool.QueryRow(ctx, findSessionByAccessTokenQuery, accessToken)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to find session by access token: %w", err)
	}
	return session, nil
}

func (r *PgxSessionRepository) FindSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	row := r.Pool.QueryRow(ctx, findSessionByRefreshTokenQuery, refreshToken)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find session by refresh token: %w", err)
	}
	return session, nil
}

func (r *PgxSessionRepository) RotateSession(ctx context.Context, refreshToken string, newAccessToken string, newAccessExpiresAt time.Time, newRefreshToken string, newRefreshExpiresAt time.Time) (*domain.Session, error) {
	row := r.Pool.QueryRow(ctx, rotateSessionQuery,
		refreshToken,
		newAccessToken,
		newAccessExpiresAt,
		newRefreshToken,
		newRefreshExpiresAt,
	)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}
	return session, nil
}

func (r *PgxSessionRepository) DeleteSessionByRefreshToken(ctx context.Context, refreshToken string) error {
	// Zero rows affected is fine; logout is idempotent.
	_, err := r.Pool.Exec(ctx, deleteSessionByRefreshTokenQuery, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) DeleteSessionsByUserID(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, deleteSessionsByUserIDQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sessions for user: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, deleteExpiredSessionsQuery, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// scanSession scans a session row into its domain shape.
func scanSession(row pgx.Row) (*domain.Session, error) {
	var m models.Session
	err := row.Scan(
		&m.SessionID,
		&m.UserID,
		&m.AccessToken,
		&m.AccessExpiresAt,
		&m.RefreshToken,
		&m.RefreshExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	session := mapping.ToDomainSession(m)
	return &session, nil
}
