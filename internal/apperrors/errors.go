package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTokenExpired indicates that a presented access token has passed its expiry claim.
var ErrTokenExpired = errors.New("token expired")

// ErrInvalidToken indicates a malformed access token or a bad signature.
var ErrInvalidToken = errors.New("invalid token")

// ErrNoActiveSession indicates that a syntactically valid access token has no
// matching live session. The session row is the source of truth over the
// signed token, which is what makes logout and rotation take effect
// immediately.
var ErrNoActiveSession = errors.New("no active session")

// ErrInvalidRefreshToken indicates that a refresh token does not match any
// live session. Expired and unknown tokens are deliberately indistinguishable.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// ErrInvalidOrExpiredResetToken indicates that a password reset token matches
// no user or has passed its expiry.
var ErrInvalidOrExpiredResetToken = errors.New("invalid or expired reset token")

// ErrExternalService indicates a failure in an external collaborator
// (email provider, OAuth provider, object storage).
var ErrExternalService = errors.New("external service error")
