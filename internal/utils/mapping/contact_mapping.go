package mapping

import (
	"github.com/contactvault/backend/internal/core/domain"
	"github.com/contactvault/backend/internal/models"
)

// ToModelContact converts a domain Contact to a model Contact
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:   d.ContactID,
		OwnerUserID: d.OwnerUserID,
		FirstName:   d.FirstName,
		LastName:    toNullString(optional(d.LastName)),
		Email:       toNullString(optional(d.Email)),
		Phone:       toNullString(optional(d.Phone)),
		Address:     toNullString(optional(d.Address)),
		PhotoURL:    toNullString(d.PhotoURL),
		Favorite:    d.Favorite,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainContact converts a model Contact to a domain Contact
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		OwnerUserID: m.OwnerUserID,
		FirstName:   m.FirstName,
		LastName:    m.LastName.String,
		Email:       m.Email.String,
		Phone:       m.Phone.String,
		Address:     m.Address.String,
		PhotoURL:    fromNullString(m.PhotoURL),
		Favorite:    m.Favorite,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainContactSlice converts a slice of model Contacts to domain Contacts
func ToDomainContactSlice(ms []models.Contact) []domain.Contact {
	ds := make([]domain.Contact, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContact(m)
	}
	return ds
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
