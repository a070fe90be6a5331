package domain

import "time"

// Contact is a single address-book entry. Contacts are strictly owner-scoped;
// no operation ever reaches across OwnerUserID boundaries.
type Contact struct {
	ContactID   string    `json:"contactID"`
	OwnerUserID string    `json:"-"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
