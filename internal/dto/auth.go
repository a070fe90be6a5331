package dto

import "github.com/contactvault/backend/internal/core/domain"

// RegisterRequest defines the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

// LoginRequest defines the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful register/login/refresh/OAuth login.
// The refresh token is never part of the body; it travels only in the
// HTTP-only cookie set alongside this response.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ForgotPasswordRequest asks for a password reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes an emailed reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,password"`
}

// ChangePasswordRequest changes the password of the authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,password"`
}

// GoogleExchangeRequest carries the one-time authorization code from the
// frontend's Google redirect.
type GoogleExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleURLResponse carries the provider authorization URL.
type GoogleURLResponse struct {
	URL string `json:"url"`
}

// GenericMessageResponse is the uniform body for endpoints that must not leak
// account existence (e.g. forgot-password).
type GenericMessageResponse struct {
	Message string `json:"message"`
}

// ToAuthResponse builds an AuthResponse from a user and an access token.
func ToAuthResponse(user *domain.User, accessToken string) AuthResponse {
	return AuthResponse{
		Token: accessToken,
		User:  ToUserResponse(user),
	}
}
