package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/core/services"
	"github.com/contactvault/backend/internal/dto"
	"github.com/contactvault/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo    *MockUserRepository
	sessionRepo *MockSessionRepository
	service     portssvc.UserSvcFacade
	ctx         context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.sessionRepo = new(MockSessionRepository)
	s.service = services.NewUserService(s.userRepo, s.sessionRepo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegisterUser_Success() {
	req := dto.RegisterRequest{Name: "Ada", Email: "Ada@Example.COM", Password: "Sup3rSecret"}

	s.userRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ada@example.com" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != nil &&
			*u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, *u.PasswordHash)
	})).Return(nil).Once()

	user, err := s.service.RegisterUser(s.ctx, req)

	s.Require().NoError(err)
	s.Equal("ada@example.com", user.Email)
	s.NotEmpty(user.UserID)
	s.userRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "Sup3rSecret"}

	s.userRepo.On("SaveUser", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	user, err := s.service.RegisterUser(s.ctx, req)

	s.Require().Error(err)
	s.Nil(user)
	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(409, appErr.Code)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, _ := utils.HashPassword("Sup3rSecret")
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: &hash}

	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(stored, nil).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "ADA@example.com", "Sup3rSecret")

	s.Require().NoError(err)
	s.Equal("u1", user.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, _ := utils.HashPassword("Sup3rSecret")
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: &hash}

	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(stored, nil).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "ada@example.com", "wrong")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailSameError() {
	s.userRepo.On("FindUserByEmail", s.ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "ghost@example.com", "whatever")

	s.Nil(user)
	// Indistinguishable from a wrong password.
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_OAuthOnlyAccountFails() {
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", AuthProvider: domain.ProviderGoogle}

	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(stored, nil).Once()

	user, err := s.service.AuthenticateUser(s.ctx, "ada@example.com", "anything")

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestCreateOAuthUser_ExistingAccountReused() {
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", AuthProvider: domain.ProviderLocal}

	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(stored, nil).Once()

	user, err := s.service.CreateOAuthUser(s.ctx, "Ada", "Ada@Example.com", "https://pic", domain.ProviderGoogle)

	s.Require().NoError(err)
	s.Equal("u1", user.UserID)
	s.userRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateOAuthUser_NewAccount() {
	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(nil, apperrors.ErrNotFound).Once()
	s.userRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ada@example.com" && u.AuthProvider == domain.ProviderGoogle && u.PasswordHash == nil
	})).Return(nil).Once()

	user, err := s.service.CreateOAuthUser(s.ctx, "Ada", "ada@example.com", "", domain.ProviderGoogle)

	s.Require().NoError(err)
	s.Nil(user.PasswordHash)
	s.userRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestChangePassword_InvalidatesAllSessions() {
	hash, _ := utils.HashPassword("OldSecret1")
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: &hash}

	s.userRepo.On("FindUserByID", s.ctx, "u1").Return(stored, nil).Once()
	s.userRepo.On("UpdatePassword", s.ctx, "u1", mock.MatchedBy(func(h string) bool {
		return utils.CheckPasswordHash("NewSecret1", h)
	})).Return(nil).Once()
	s.sessionRepo.On("DeleteSessionsByUserID", s.ctx, "u1").Return(nil).Once()

	err := s.service.ChangePassword(s.ctx, "u1", "OldSecret1", "NewSecret1")

	s.Require().NoError(err)
	s.sessionRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestChangePassword_WrongCurrentPassword() {
	hash, _ := utils.HashPassword("OldSecret1")
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: &hash}

	s.userRepo.On("FindUserByID", s.ctx, "u1").Return(stored, nil).Once()

	err := s.service.ChangePassword(s.ctx, "u1", "wrong", "NewSecret1")

	s.ErrorIs(err, apperrors.ErrUnauthorized)
	s.sessionRepo.AssertNotCalled(s.T(), "DeleteSessionsByUserID", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestUpdateProfile_EmptyRequest() {
	user, err := s.service.UpdateProfile(s.ctx, "u1", dto.UpdateProfileRequest{})

	s.Nil(user)
	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(400, appErr.Code)
}

func (s *UserServiceTestSuite) TestUpdateProfile_NormalizesEmail() {
	stored := &domain.User{UserID: "u1", Name: "Ada", Email: "ada@example.com"}
	newEmail := "New@Example.COM"

	s.userRepo.On("FindUserByID", s.ctx, "u1").Return(stored, nil).Once()
	s.userRepo.On("UpdateUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "new@example.com"
	})).Return(nil).Once()

	user, err := s.service.UpdateProfile(s.ctx, "u1", dto.UpdateProfileRequest{Email: &newEmail})

	s.Require().NoError(err)
	assert.Equal(s.T(), "new@example.com", user.Email)
}
