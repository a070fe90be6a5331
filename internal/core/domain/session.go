package domain

import "time"

// Session is an active authentication grant. A session is valid only while
// the stored access token matches exactly the one last issued for it and the
// access-token expiry is still in the future. The refresh token is globally
// unique across all sessions and single-use: rotation replaces it in place
// with no grace window.
type Session struct {
	SessionID        string    `json:"sessionID"`
	UserID           string    `json:"userID"`
	AccessToken      string    `json:"-"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"-"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// IsAccessExpired reports whether the session's access token expiry has passed.
func (s *Session) IsAccessExpired() bool {
	return time.Now().After(s.AccessExpiresAt)
}
