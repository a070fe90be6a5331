package dto

import (
	"time"

	"github.com/contactvault/backend/internal/core/domain"
)

// UserResponse is the public shape of a user record.
type UserResponse struct {
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhotoURL     *string   `json:"photoURL,omitempty"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Pointers differentiate omitted fields from zero-value fields; at least one
// field must be present.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	PhotoURL *string `json:"photoURL" binding:"omitempty,url"`
}

// IsEmpty reports whether no updatable field was supplied.
func (r UpdateProfileRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.PhotoURL == nil
}

// ToUserResponse converts a domain User to its public response shape.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		PhotoURL:     user.PhotoURL,
		AuthProvider: string(user.AuthProvider),
		CreatedAt:    user.CreatedAt,
	}
}
