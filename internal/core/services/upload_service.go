package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/platform/storage"
	"github.com/google/uuid"
)

const presignedUploadTTL = 15 * time.Minute

// uploadService implements UploadSvcFacade. The backend only mints presigned
// URLs; avatar bytes travel directly between the client and the bucket.
type uploadService struct {
	presigner storage.Presigner
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(presigner storage.Presigner) portssvc.UploadSvcFacade {
	return &uploadService{presigner: presigner}
}

var _ portssvc.UploadSvcFacade = (*uploadService)(nil)

func (s *uploadService) PresignAvatarUpload(ctx context.Context, userID string, req dto.AvatarUploadRequest) (*dto.AvatarUploadResponse, error) {
	key := avatarStorageKey(userID, req.FileName)

	uploadURL, objectURL, err := s.presigner.PresignPut(ctx, key, req.ContentType, presignedUploadTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign avatar upload: %w", err)
	}

	return &dto.AvatarUploadResponse{
		UploadURL: uploadURL,
		PhotoURL:  objectURL,
	}, nil
}

// avatarStorageKey builds an object key under the user's prefix. A random
// component keeps re-uploads from colliding and from being guessable; only
// the original extension is kept from the client file name.
func avatarStorageKey(userID string, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
}
