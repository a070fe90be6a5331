package dto

import "github.com/contactvault/backend/internal/core/domain"

// CreateContactRequest defines the payload for creating a contact.
type CreateContactRequest struct {
	FirstName string  `json:"firstName" binding:"required,max=100"`
	LastName  string  `json:"lastName" binding:"omitempty,max=100"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Phone     string  `json:"phone" binding:"omitempty,max=30"`
	Address   string  `json:"address" binding:"omitempty,max=255"`
	PhotoURL  *string `json:"photoURL" binding:"omitempty,url"`
	Favorite  bool    `json:"favorite"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateContactRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
	PhotoURL  *string `json:"photoURL" binding:"omitempty,url"`
	Favorite  *bool   `json:"favorite"`
}

// IsEmpty reports whether no updatable field was supplied.
func (r UpdateContactRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Phone == nil && r.Address == nil && r.PhotoURL == nil && r.Favorite == nil
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	Limit     int    `form:"limit,default=20"`
	PageToken string `form:"pageToken"`
}

// ListContactsResponse wraps a page of contacts with the keyset token for the
// next page (empty when exhausted).
type ListContactsResponse struct {
	Contacts      []domain.Contact `json:"contacts"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}
