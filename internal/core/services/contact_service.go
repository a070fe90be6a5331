package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const maxContactPageSize = 100

// contactService implements ContactSvcFacade. Ownership scoping is enforced
// at the repository layer; this service never sees another user's contacts.
type contactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a new instance of contactService.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, ownerUserID string, req dto.CreateContactRequest) (*domain.Contact, error) {
	now := time.Now()
	contact := domain.Contact{
		ContactID:   uuid.NewString(),
		OwnerUserID: ownerUserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		PhotoURL:    req.PhotoURL,
		Favorite:    req.Favorite,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, ownerUserID string, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, ownerUserID, contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, ownerUserID string, params dto.ListContactsParams) (*dto.ListContactsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxContactPageSize {
		limit = maxContactPageSize
	}

	var afterCreatedAt time.Time
	var afterContactID string
	if params.PageToken != "" {
		var err error
		afterCreatedAt, afterContactID, err = pagination.DecodeToken(params.PageToken)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid page token")
		}
	}

	// Fetch one extra row to learn whether another page exists without a
	// second count query.
	contacts, err := s.contactRepo.FindContacts(ctx, ownerUserID, limit+1, afterCreatedAt, afterContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	resp := &dto.ListContactsResponse{}
	if len(contacts) > limit {
		contacts = contacts[:limit]
		last := contacts[len(contacts)-1]
		resp.NextPageToken = pagination.EncodeToken(last.CreatedAt, last.ContactID)
	}
	resp.Contacts = contacts

	return resp, nil
}

func (s *contactService) UpdateContact(ctx context.Context, ownerUserID string, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewBadRequestError("No fields to update")
	}

	contact, err := s.contactRepo.FindContactByID(ctx, ownerUserID, contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact for update: %w", err)
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Address != nil {
		contact.Address = *req.Address
	}
	if req.PhotoURL != nil {
		contact.PhotoURL = req.PhotoURL
	}
	if req.Favorite != nil {
		contact.Favorite = *req.Favorite
	}
	contact.UpdatedAt = time.Now()

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, ownerUserID string, contactID string) error {
	if err := s.contactRepo.DeleteContact(ctx, ownerUserID, contactID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
