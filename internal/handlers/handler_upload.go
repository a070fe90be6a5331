package handlers

import (
	"log/slog"
	"net/http"

	"github.com/contactvault/backend/internal/apperrors"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UploadHandler hands out presigned URLs for avatar uploads.
type UploadHandler struct {
	uploadService portssvc.UploadSvcFacade
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(us portssvc.UploadSvcFacade) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// registerUploadRoutes sets up the routes for upload URL minting.
func registerUploadRoutes(rg *gin.RouterGroup, us portssvc.UploadSvcFacade) {
	h := NewUploadHandler(us)

	uploads := rg.Group("/uploads")
	{
		uploads.POST("/avatar", h.PresignAvatar)
	}
}

// PresignAvatar godoc
// @Summary Presign avatar upload
// @Description Returns a time-limited URL for uploading an avatar image directly to object storage, plus the public URL to store via the profile endpoint.
// @Tags uploads
// @Accept json
// @Produce json
// @Param upload body dto.AvatarUploadRequest true "File name and content type"
// @Success 200 {object} dto.AvatarUploadResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /uploads/avatar [post]
func (h *UploadHandler) PresignAvatar(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	resp, err := h.uploadService.PresignAvatarUpload(ctx, userID, req)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to presign avatar upload", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
