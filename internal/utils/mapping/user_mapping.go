package mapping

import (
	"database/sql"

	"github.com/contactvault/backend/internal/core/domain"
	"github.com/contactvault/backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:              d.UserID,
		Name:                d.Name,
		Email:               d.Email,
		PasswordHash:        toNullString(d.PasswordHash),
		PhotoURL:            toNullString(d.PhotoURL),
		AuthProvider:        string(d.AuthProvider),
		ResetTokenHash:      toNullString(d.ResetTokenHash),
		ResetTokenExpiresAt: toNullTime(d.ResetTokenExpiresAt),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:              m.UserID,
		Name:                m.Name,
		Email:               m.Email,
		PasswordHash:        fromNullString(m.PasswordHash),
		PhotoURL:            fromNullString(m.PhotoURL),
		AuthProvider:        domain.AuthProvider(m.AuthProvider),
		ResetTokenHash:      fromNullString(m.ResetTokenHash),
		ResetTokenExpiresAt: fromNullTime(m.ResetTokenExpiresAt),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
