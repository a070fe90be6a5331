package services

import (
	"context"

	"github.com/contactvault/backend/internal/dto"
)

// UploadSvcFacade issues presigned URLs for avatar image uploads. The actual
// byte transfer happens directly between the client and object storage.
type UploadSvcFacade interface {
	PresignAvatarUpload(ctx context.Context, userID string, req dto.AvatarUploadRequest) (*dto.AvatarUploadResponse, error)
}
