package services

import (
	"context"

	"github.com/contactvault/backend/internal/core/domain"
	"github.com/contactvault/backend/internal/dto"
)

// ContactSvcFacade defines owner-scoped contact management. Every operation
// takes the requesting user's ID; contacts of other users behave as not found.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, ownerUserID string, req dto.CreateContactRequest) (*domain.Contact, error)
	GetContactByID(ctx context.Context, ownerUserID string, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, ownerUserID string, params dto.ListContactsParams) (*dto.ListContactsResponse, error)
	UpdateContact(ctx context.Context, ownerUserID string, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error)
	DeleteContact(ctx context.Context, ownerUserID string, contactID string) error
}
