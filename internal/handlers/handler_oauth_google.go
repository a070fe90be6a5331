package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/contactvault/backend/internal/platform/config"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles the Google login flow: handing out the provider
// authorization URL and exchanging the returned code for an application
// session.
type GoogleOAuthHandler struct {
	cfg                *config.Config
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	sessionSvc         portssvc.SessionSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	cfg *config.Config,
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	userService portssvc.UserSvcFacade,
	sessionSvc portssvc.SessionSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		cfg:                cfg,
		googleOAuthService: googleOAuthService,
		userService:        userService,
		sessionSvc:         sessionSvc,
	}
}

// registerGoogleOAuthRoutes sets up the public Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(cfg, services.GoogleOAuth, services.User, services.Session)

	oauth := rg.Group("/api/v1/auth/google")
	{
		oauth.GET("/url", h.GetLoginURL)
		oauth.POST("", h.ExchangeCode)
	}
}

// GetLoginURL godoc
// @Summary Get Google login URL
// @Description Returns the Google authorization URL with a fresh CSRF state parameter.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.GoogleURLResponse
// @Failure 500 {object} apperrors.AppError
// @Router /auth/google/url [get]
func (h *GoogleOAuthHandler) GetLoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to start Google login")
		c.JSON(appErr.Code, appErr)
		return
	}

	c.JSON(http.StatusOK, dto.GoogleURLResponse{URL: h.googleOAuthService.GetGoogleLoginURL(ctx, state)})
}

// ExchangeCode godoc
// @Summary Exchange Google authorization code
// @Description Exchanges the code returned by Google for an application session. Creates the account on first login; the refresh token is set as an HTTP-only cookie.
// @Tags oauth
// @Accept json
// @Produce json
// @Param exchange body dto.GoogleExchangeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError "Invalid or expired authorization code"
// @Failure 401 {object} apperrors.AppError "Invalid Google ID token"
// @Failure 504 {object} apperrors.AppError "Google unreachable"
// @Router /auth/google [post]
func (h *GoogleOAuthHandler) ExchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	// 1. Exchange the authorization code for Google tokens
	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	// 2. Validate the ID token carried in Google's response
	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 3. Extract user information from the verified payload
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	if email == "" {
		logger.Error("Email claim missing from Google ID token payload")
		appErr := apperrors.NewInternalServerError("Essential user information missing from Google token")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 4. Find or create the account
	user, err := h.userService.CreateOAuthUser(ctx, name, email, picture, domain.ProviderGoogle)
	if err != nil {
		logger.Error("Failed to create or get OAuth user", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	// 5. Open an application session
	session, err := h.sessionSvc.CreateSession(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to create session after Google login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondWithError(c, err)
		return
	}

	logger.Info("User logged in via Google", slog.String("user_id", user.UserID))

	setRefreshCookieForConfig(c, h.cfg, session)
	c.JSON(http.StatusOK, dto.ToAuthResponse(user, session.AccessToken))
}

// setRefreshCookieForConfig mirrors AuthHandler.setRefreshCookie for handlers
// that don't embed the auth handler.
func setRefreshCookieForConfig(c *gin.Context, cfg *config.Config, session *domain.Session) {
	maxAge := int(cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.RefreshTokenCookieName, session.RefreshToken, maxAge, cfg.RefreshTokenCookiePath, "", cfg.IsProduction, true)
}
