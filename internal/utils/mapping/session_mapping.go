package mapping

import (
	"database/sql"
	"time"

	"github.com/contactvault/backend/internal/core/domain"
	"github.com/contactvault/backend/internal/models"
)

// ToModelSession converts a domain Session to a model Session
func ToModelSession(d domain.Session) models.Session {
	return models.Session{
		SessionID:        d.SessionID,
		UserID:           d.UserID,
		AccessToken:      d.AccessToken,
		AccessExpiresAt:  d.AccessExpiresAt,
		RefreshToken:     d.RefreshToken,
		RefreshExpiresAt: d.RefreshExpiresAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainSession converts a model Session to a domain Session
func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		SessionID:        m.SessionID,
		UserID:           m.UserID,
		AccessToken:      m.AccessToken,
		AccessExpiresAt:  m.AccessExpiresAt,
		RefreshToken:     m.RefreshToken,
		RefreshExpiresAt: m.RefreshExpiresAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
