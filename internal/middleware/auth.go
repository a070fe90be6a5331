package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/contactvault/backend/internal/apperrors"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware handler that authenticates requests.
// A bearer token passes only when its JWT signature and expiry check out AND
// a live session stores that exact token AND the session's owner still exists;
// the session store is the source of truth, so logout and password changes
// revoke tokens before their JWT expiry.
func AuthMiddleware(tokenSvc portssvc.TokenSvcFacade, sessionSvc portssvc.SessionSvcFacade, userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tokenString := parts[1]

		// Cheap local check first: signature and expiry. Rejects garbage
		// without touching the database.
		userID, err := tokenSvc.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				msg = "Token has expired"
			}
			logger.Warn("Invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		// The session store decides whether the token is still live.
		session, err := sessionSvc.FindSessionByAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				logger.Warn("No active session for presented token", slog.String("user_id", userID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
				return
			}
			logger.Error("Session lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}

		if session.UserID != userID {
			// A signed token matching another user's session row means either
			// token reuse across accounts or store corruption. Reject.
			logger.Error("Session owner does not match token subject",
				slog.String("token_user_id", userID),
				slog.String("session_user_id", session.UserID),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// The subject must resolve to an existing account. The sessions table
		// cascades on user deletion, so this only trips on a lookup failure
		// or a store inconsistency.
		if _, err := userSvc.GetUserByID(c.Request.Context(), session.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Token subject has no account", slog.String("user_id", session.UserID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			logger.Error("User lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, session.UserID)

		enrichedLogger := logger.With(slog.String("user_id", session.UserID))
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)

		c.Next()
	}
}
