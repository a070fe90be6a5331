package dto

// AvatarUploadRequest asks for a presigned avatar upload URL.
type AvatarUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp"`
}

// AvatarUploadResponse carries the presigned PUT URL and the public object
// URL to store via PATCH /auth/profile once the upload completes.
type AvatarUploadResponse struct {
	UploadURL string `json:"uploadURL"`
	PhotoURL  string `json:"photoURL"`
}
