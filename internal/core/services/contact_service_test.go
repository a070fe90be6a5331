package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/core/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ContactServiceTestSuite struct {
	suite.Suite
	contactRepo *MockContactRepository
	service     portssvc.ContactSvcFacade
	ctx         context.Context
}

func (s *ContactServiceTestSuite) SetupTest() {
	s.contactRepo = new(MockContactRepository)
	s.service = services.NewContactService(s.contactRepo)
	s.ctx = context.Background()
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}

func makeContacts(n int) []domain.Contact {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Contact, n)
	for i := range out {
		out[i] = domain.Contact{
			ContactID:   string(rune('a' + i)),
			OwnerUserID: "u1",
			FirstName:   "Contact",
			CreatedAt:   base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return out
}

func (s *ContactServiceTestSuite) TestCreateContact_OwnedByCaller() {
	req := dto.CreateContactRequest{FirstName: "Grace", Email: "grace@example.com"}

	s.contactRepo.On("SaveContact", s.ctx, mock.MatchedBy(func(c domain.Contact) bool {
		return c.OwnerUserID == "u1" && c.FirstName == "Grace" && c.ContactID != ""
	})).Return(nil).Once()

	contact, err := s.service.CreateContact(s.ctx, "u1", req)

	s.Require().NoError(err)
	s.Equal("u1", contact.OwnerUserID)
}

func (s *ContactServiceTestSuite) TestListContacts_FirstPageWithNextToken() {
	// Repo returns limit+1 rows, signalling another page exists.
	contacts := makeContacts(4)

	s.contactRepo.On("FindContacts", s.ctx, "u1", 4, time.Time{}, "").Return(contacts, nil).Once()

	resp, err := s.service.ListContacts(s.ctx, "u1", dto.ListContactsParams{Limit: 3})

	s.Require().NoError(err)
	s.Len(resp.Contacts, 3)
	s.Require().NotEmpty(resp.NextPageToken)

	// The token decodes to the cursor position of the last returned row.
	createdAt, contactID, err := pagination.DecodeToken(resp.NextPageToken)
	s.Require().NoError(err)
	s.Equal(contacts[2].ContactID, contactID)
	s.True(createdAt.Equal(contacts[2].CreatedAt))
}

func (s *ContactServiceTestSuite) TestListContacts_LastPageHasNoToken() {
	contacts := makeContacts(2)

	s.contactRepo.On("FindContacts", s.ctx, "u1", 21, time.Time{}, "").Return(contacts, nil).Once()

	resp, err := s.service.ListContacts(s.ctx, "u1", dto.ListContactsParams{})

	s.Require().NoError(err)
	s.Len(resp.Contacts, 2)
	s.Empty(resp.NextPageToken)
}

func (s *ContactServiceTestSuite) TestListContacts_InvalidPageToken() {
	resp, err := s.service.ListContacts(s.ctx, "u1", dto.ListContactsParams{PageToken: "not-a-token"})

	s.Nil(resp)
	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(400, appErr.Code)
}

func (s *ContactServiceTestSuite) TestListContacts_ClampsOversizedLimit() {
	s.contactRepo.On("FindContacts", s.ctx, "u1", 101, time.Time{}, "").Return([]domain.Contact{}, nil).Once()

	_, err := s.service.ListContacts(s.ctx, "u1", dto.ListContactsParams{Limit: 500})

	s.NoError(err)
	s.contactRepo.AssertExpectations(s.T())
}

func (s *ContactServiceTestSuite) TestUpdateContact_NotFound() {
	s.contactRepo.On("FindContactByID", s.ctx, "u1", "c1").Return(nil, apperrors.ErrNotFound).Once()

	name := "New"
	contact, err := s.service.UpdateContact(s.ctx, "u1", "c1", dto.UpdateContactRequest{FirstName: &name})

	s.Nil(contact)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ContactServiceTestSuite) TestUpdateContact_AppliesPartialFields() {
	stored := &domain.Contact{ContactID: "c1", OwnerUserID: "u1", FirstName: "Grace", Phone: "123"}
	fav := true

	s.contactRepo.On("FindContactByID", s.ctx, "u1", "c1").Return(stored, nil).Once()
	s.contactRepo.On("UpdateContact", s.ctx, mock.MatchedBy(func(c domain.Contact) bool {
		return c.Favorite && c.FirstName == "Grace" && c.Phone == "123"
	})).Return(nil).Once()

	contact, err := s.service.UpdateContact(s.ctx, "u1", "c1", dto.UpdateContactRequest{Favorite: &fav})

	s.Require().NoError(err)
	s.True(contact.Favorite)
}

func (s *ContactServiceTestSuite) TestDeleteContact_NotFound() {
	s.contactRepo.On("DeleteContact", s.ctx, "u1", "ghost").Return(apperrors.ErrNotFound).Once()

	err := s.service.DeleteContact(s.ctx, "u1", "ghost")

	s.ErrorIs(err, apperrors.ErrNotFound)
}
