package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UploadHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	uploadSvc *MockUploadService
}

func (s *UploadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.uploadSvc = new(MockUploadService)
	h := handlers.NewUploadHandler(s.uploadSvc)

	s.router = gin.New()
	// Stand-in for the auth gate: pin the authenticated user.
	s.router.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	s.router.POST("/api/v1/uploads/avatar", h.PresignAvatar)
}

func TestUploadHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UploadHandlerTestSuite))
}

func (s *UploadHandlerTestSuite) post(body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/avatar", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *UploadHandlerTestSuite) TestPresignAvatar() {
	resp := &dto.AvatarUploadResponse{
		UploadURL: "https://bucket.s3.us-east-1.amazonaws.com/avatars/u1/abc.png?sig=x",
		PhotoURL:  "https://bucket.s3.us-east-1.amazonaws.com/avatars/u1/abc.png",
	}
	s.uploadSvc.On("PresignAvatarUpload", mock.Anything, "u1", mock.MatchedBy(func(r dto.AvatarUploadRequest) bool {
		return r.FileName == "me.png" && r.ContentType == "image/png"
	})).Return(resp, nil).Once()

	w := s.post(dto.AvatarUploadRequest{FileName: "me.png", ContentType: "image/png"})

	s.Equal(http.StatusOK, w.Code)

	var got dto.AvatarUploadResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(resp.UploadURL, got.UploadURL)
	s.Equal(resp.PhotoURL, got.PhotoURL)
}

func (s *UploadHandlerTestSuite) TestPresignAvatar_RejectsUnknownContentType() {
	w := s.post(dto.AvatarUploadRequest{FileName: "me.gif", ContentType: "image/gif"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.uploadSvc.AssertNotCalled(s.T(), "PresignAvatarUpload", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UploadHandlerTestSuite) TestPresignAvatar_StorageFailure() {
	s.uploadSvc.On("PresignAvatarUpload", mock.Anything, "u1", mock.Anything).
		Return(nil, fmt.Errorf("%w: presign PUT failed", apperrors.ErrExternalService)).Once()

	w := s.post(dto.AvatarUploadRequest{FileName: "me.png", ContentType: "image/png"})

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(w.Body.String(), "upstream service")
}
