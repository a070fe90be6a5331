package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactvault/backend/internal/apperrors"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/contactvault/backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// UserHandler handles requests about the authenticated user's own account.
type UserHandler struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
	sessionSvc  portssvc.SessionSvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(cfg *config.Config, us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade) *UserHandler {
	return &UserHandler{cfg: cfg, userService: us, sessionSvc: ss}
}

// registerUserRoutes sets up the routes for the authenticated user's account.
func registerUserRoutes(rg *gin.RouterGroup, cfg *config.Config, us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade) {
	h := NewUserHandler(cfg, us, ss)

	auth := rg.Group("/auth")
	{
		auth.GET("/current", h.GetCurrentUser)
		auth.PATCH("/profile", h.UpdateProfile)
		auth.PATCH("/change-password", h.ChangePassword)
	}
}

// GetCurrentUser godoc
// @Summary Get current user
// @Description Returns the profile of the authenticated user.
// @Tags user
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /auth/current [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Authentication required")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("User not found")
			c.JSON(appErr.Code, appErr)
			return
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load current user", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Applies a partial update to the authenticated user's profile.
// @Tags user
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "Email already in use"
// @Security BearerAuth
// @Router /auth/profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Authentication required")
		c.JSON(appErr.Code, appErr)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, req)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Profile update failed", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ChangePassword godoc
// @Summary Change password
// @Description Verifies the current password and sets a new one. Every session of the user is invalidated; a fresh one is issued for this device.
// @Tags user
// @Accept json
// @Produce json
// @Param change body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.AppError "Validation failure or wrong current password"
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /auth/change-password [patch]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Authentication required")
		c.JSON(appErr.Code, appErr)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	if err := h.userService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// A wrong current password is a validation failure on this
			// endpoint, not an authentication failure of the request itself.
			appErr := apperrors.NewBadRequestError("Current password is incorrect")
			c.JSON(appErr.Code, appErr)
			return
		}
		logger.Error("Password change failed", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	// All sessions are gone, including this one. Issue a fresh session so
	// the current device stays signed in.
	session, err := h.sessionSvc.CreateSession(ctx, userID)
	if err != nil {
		logger.Error("Failed to create session after password change", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	setRefreshCookieForConfig(c, h.cfg, session)
	c.JSON(http.StatusOK, dto.ToAuthResponse(user, session.AccessToken))
}
