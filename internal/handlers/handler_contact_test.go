package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ContactHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	contactSvc *MockContactService
}

func (s *ContactHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.contactSvc = new(MockContactService)
	h := handlers.NewContactHandler(s.contactSvc)

	s.router = gin.New()
	// Stand-in for the auth gate: pin the authenticated user.
	s.router.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})

	contacts := s.router.Group("/api/v1/contacts")
	{
		contacts.POST("", h.CreateContact)
		contacts.GET("", h.ListContacts)
		contacts.GET("/:contactID", h.GetContact)
		contacts.PATCH("/:contactID", h.UpdateContact)
		contacts.DELETE("/:contactID", h.DeleteContact)
	}
}

func TestContactHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ContactHandlerTestSuite))
}

func (s *ContactHandlerTestSuite) TestCreateContact() {
	contact := &domain.Contact{ContactID: "c1", OwnerUserID: "u1", FirstName: "Grace"}

	s.contactSvc.On("CreateContact", mock.Anything, "u1", mock.MatchedBy(func(r dto.CreateContactRequest) bool {
		return r.FirstName == "Grace"
	})).Return(contact, nil).Once()

	b, _ := json.Marshal(dto.CreateContactRequest{FirstName: "Grace"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), "c1")
}

func (s *ContactHandlerTestSuite) TestCreateContact_MissingFirstName() {
	b, _ := json.Marshal(map[string]string{"lastName": "Hopper"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.contactSvc.AssertNotCalled(s.T(), "CreateContact", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ContactHandlerTestSuite) TestListContacts_PassesPaginationParams() {
	resp := &dto.ListContactsResponse{Contacts: []domain.Contact{}, NextPageToken: "tok"}

	s.contactSvc.On("ListContacts", mock.Anything, "u1", mock.MatchedBy(func(p dto.ListContactsParams) bool {
		return p.Limit == 5 && p.PageToken == "cursor"
	})).Return(resp, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts?limit=5&pageToken=cursor", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "tok")
}

func (s *ContactHandlerTestSuite) TestGetContact_NotFoundForOtherOwner() {
	// The service resolves foreign contacts to ErrNotFound; the handler must
	// not distinguish them from missing ones.
	s.contactSvc.On("GetContactByID", mock.Anything, "u1", "someone-elses").
		Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts/someone-elses", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ContactHandlerTestSuite) TestDeleteContact_NoContent() {
	s.contactSvc.On("DeleteContact", mock.Anything, "u1", "c1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/c1", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())
}

func (s *ContactHandlerTestSuite) TestUpdateContact() {
	updated := &domain.Contact{ContactID: "c1", OwnerUserID: "u1", FirstName: "Grace", Favorite: true}
	fav := true

	s.contactSvc.On("UpdateContact", mock.Anything, "u1", "c1", mock.MatchedBy(func(r dto.UpdateContactRequest) bool {
		return r.Favorite != nil && *r.Favorite
	})).Return(updated, nil).Once()

	b, _ := json.Marshal(dto.UpdateContactRequest{Favorite: &fav})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/contacts/c1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "true")
}
