package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactvault/backend/internal/apperrors"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact CRUD requests scoped to the authenticated user.
type ContactHandler struct {
	contactService portssvc.ContactSvcFacade
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(cs portssvc.ContactSvcFacade) *ContactHandler {
	return &ContactHandler{contactService: cs}
}

// registerContactRoutes sets up the routes for contact management.
func registerContactRoutes(rg *gin.RouterGroup, cs portssvc.ContactSvcFacade) {
	h := NewContactHandler(cs)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.CreateContact)
		contacts.GET("", h.ListContacts)
		contacts.GET("/:contactID", h.GetContact)
		contacts.PATCH("/:contactID", h.UpdateContact)
		contacts.DELETE("/:contactID", h.DeleteContact)
	}
}

// requireUserID pulls the authenticated user ID or writes a 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Authentication required")
		c.JSON(appErr.Code, appErr)
		return "", false
	}
	return userID, true
}

// CreateContact godoc
// @Summary Create contact
// @Description Creates a contact owned by the authenticated user.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body dto.CreateContactRequest true "Contact fields"
// @Success 201 {object} domain.Contact
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	contact, err := h.contactService.CreateContact(ctx, userID, req)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to create contact", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// ListContacts godoc
// @Summary List contacts
// @Description Returns a page of the user's contacts ordered by creation time descending. Pass the returned nextPageToken to fetch the next page.
// @Tags contacts
// @Produce json
// @Param limit query int false "Page size (max 100)" default(20)
// @Param pageToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListContactsResponse
// @Failure 400 {object} apperrors.AppError "Invalid page token"
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid query parameters")
		c.JSON(appErr.Code, appErr)
		return
	}

	resp, err := h.contactService.ListContacts(ctx, userID, params)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list contacts", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetContact godoc
// @Summary Get contact
// @Description Returns one contact owned by the authenticated user.
// @Tags contacts
// @Produce json
// @Param contactID path string true "Contact ID"
// @Success 200 {object} domain.Contact
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /contacts/{contactID} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	contact, err := h.contactService.GetContactByID(ctx, userID, c.Param("contactID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("Contact not found")
			c.JSON(appErr.Code, appErr)
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// UpdateContact godoc
// @Summary Update contact
// @Description Applies a partial update to a contact owned by the authenticated user.
// @Tags contacts
// @Accept json
// @Produce json
// @Param contactID path string true "Contact ID"
// @Param contact body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} domain.Contact
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /contacts/{contactID} [patch]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	contact, err := h.contactService.UpdateContact(ctx, userID, c.Param("contactID"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("Contact not found")
			c.JSON(appErr.Code, appErr)
			return
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Contact update failed", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete contact
// @Description Deletes a contact owned by the authenticated user.
// @Tags contacts
// @Produce json
// @Param contactID path string true "Contact ID"
// @Success 204 "No Content"
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /contacts/{contactID} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(ctx, userID, c.Param("contactID")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("Contact not found")
			c.JSON(appErr.Code, appErr)
			return
		}
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
