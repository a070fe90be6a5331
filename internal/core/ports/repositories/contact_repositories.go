package repositories

import (
	"context"
	"time"

	"github.com/contactvault/backend/internal/core/domain"
)

// ContactReader defines read operations for contact data. All lookups are
// owner-scoped; a contact belonging to another user behaves as not found.
type ContactReader interface {
	// FindContactByID retrieves a contact owned by ownerUserID.
	FindContactByID(ctx context.Context, ownerUserID string, contactID string) (*domain.Contact, error)

	// FindContacts retrieves a keyset-paginated page of the owner's contacts
	// ordered by creation time descending. The after parameters are the
	// cursor position from the previous page; zero values start from the top.
	FindContacts(ctx context.Context, ownerUserID string, limit int, afterCreatedAt time.Time, afterContactID string) ([]domain.Contact, error)
}

// ContactWriter defines write operations for contact data.
type ContactWriter interface {
	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// UpdateContact updates an existing contact owned by contact.OwnerUserID.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeleteContact removes a contact owned by ownerUserID.
	DeleteContact(ctx context.Context, ownerUserID string, contactID string) error
}

// ContactRepositoryFacade combines all contact-related repository interfaces
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
