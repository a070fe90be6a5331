package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/contactvault/backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests: registration, login,
// token refresh, logout, and the password reset flow.
type AuthHandler struct {
	cfg          *config.Config
	userService  portssvc.UserSvcFacade
	sessionSvc   portssvc.SessionSvcFacade
	resetService portssvc.PasswordResetSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade, ps portssvc.PasswordResetSvcFacade) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		userService:  us,
		sessionSvc:   ss,
		resetService: ps,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(cfg, services.User, services.Session, services.PasswordReset)

	// 10 requests per minute per IP on the credential-bearing endpoints
	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/forgot-password", limitMiddleware, h.ForgotPassword)
		auth.POST("/reset-password", limitMiddleware, h.ResetPassword)
	}

	registerGoogleOAuthRoutes(rg, cfg, services)
}

// setRefreshCookie attaches the refresh token as an HTTP-only cookie scoped
// to the auth route group, so it is only ever sent to refresh/logout.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, session *domain.Session) {
	setRefreshCookieForConfig(c, h.cfg, session)
}

// clearRefreshCookie expires the refresh cookie.
func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// respondWithError renders an AppError envelope, falling back to 500 for
// unclassified errors.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, appErr)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		appErr = apperrors.NewNotFoundError("Resource not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		appErr = apperrors.NewUnauthorizedError("Invalid credentials")
	case errors.Is(err, apperrors.ErrDuplicate):
		appErr = apperrors.NewConflictError("Resource already exists")
	case errors.Is(err, apperrors.ErrValidation):
		appErr = apperrors.NewBadRequestError("Invalid input")
	case errors.Is(err, apperrors.ErrExternalService):
		appErr = apperrors.NewInternalServerError("An upstream service failed")
	default:
		appErr = apperrors.NewInternalServerError("Something went wrong")
	}
	c.JSON(appErr.Code, appErr)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new account, opens a session and returns an access token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "An account with this email already exists"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.RegisterUser(ctx, req)
	if err != nil {
		logger.Warn("Registration failed", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	session, err := h.sessionSvc.CreateSession(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to create session after registration", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, session)
	c.JSON(http.StatusCreated, dto.ToAuthResponse(user, session.AccessToken))
}

// Login godoc
// @Summary User login
// @Description Authenticates with email and password, opens a session and returns an access token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError "Invalid email or password"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		// One message for unknown email and wrong password alike.
		appErr := apperrors.NewUnauthorizedError("Invalid email or password")
		c.JSON(appErr.Code, appErr)
		return
	}

	session, err := h.sessionSvc.CreateSession(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to create session on login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, session)
	c.JSON(http.StatusOK, dto.ToAuthResponse(user, session.AccessToken))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges the refresh cookie for a new token pair. Refresh tokens are single-use; the replaced cookie is set on the response.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.AppError "Missing, expired or already-used refresh token"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		appErr := apperrors.NewUnauthorizedError("Refresh token missing")
		c.JSON(appErr.Code, appErr)
		return
	}

	session, err := h.sessionSvc.RotateSession(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRefreshToken) {
			// Unknown, expired, or consumed by an earlier rotation. Clear
			// the cookie so the client stops retrying with a dead token.
			h.clearRefreshCookie(c)
			appErr := apperrors.NewUnauthorizedError("Invalid or expired refresh token")
			c.JSON(appErr.Code, appErr)
			return
		}
		logger.Error("Failed to rotate session", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(ctx, session.UserID)
	if err != nil {
		logger.Error("Failed to load user after rotation", slog.String("error", err.Error()), slog.String("user_id", session.UserID))
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, session)
	c.JSON(http.StatusOK, dto.ToAuthResponse(user, session.AccessToken))
}

// Logout godoc
// @Summary Logout
// @Description Deletes the session matching the refresh cookie and clears it. Succeeds even when no session matches.
// @Tags auth
// @Produce json
// @Success 204
// @Failure 500 {object} apperrors.AppError
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	refreshToken, _ := c.Cookie(h.cfg.RefreshTokenCookieName)

	if err := h.sessionSvc.DeleteSession(ctx, refreshToken); err != nil {
		logger.Error("Failed to delete session on logout", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Sends a password reset email when the account exists. The response is identical whether or not it does.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.GenericMessageResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 500 {object} apperrors.AppError
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body")
		c.JSON(appErr.Code, appErr)
		return
	}

	if err := h.resetService.RequestReset(ctx, req.Email); err != nil {
		// Internal failures must not change the response shape, but they
		// are genuine server errors worth surfacing as 500.
		logger.Error("Failed to process password reset request", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenericMessageResponse{Message: "If an account exists for that email, a reset link has been sent"})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Consumes an emailed reset token and sets a new password. All sessions of the user are invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.GenericMessageResponse
// @Failure 400 {object} apperrors.AppError "Invalid or expired reset token"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	if err := h.resetService.ConsumeReset(ctx, req.Token, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrInvalidOrExpiredResetToken) {
			appErr := apperrors.NewBadRequestError("Invalid or expired reset token")
			c.JSON(appErr.Code, appErr)
			return
		}
		logger.Error("Failed to reset password", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenericMessageResponse{Message: "Password has been reset. Please log in with your new password."})
}
