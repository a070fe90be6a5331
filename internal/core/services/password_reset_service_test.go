package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/core/services"
	"github.com/contactvault/backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PasswordResetServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	sender   *MockEmailSender
	service  portssvc.PasswordResetSvcFacade
	ctx      context.Context
}

func (s *PasswordResetServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.sender = new(MockEmailSender)
	s.service = services.NewPasswordResetService(testConfig(), s.userRepo, s.sender)
	s.ctx = context.Background()
}

func TestPasswordResetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PasswordResetServiceTestSuite))
}

func (s *PasswordResetServiceTestSuite) TestRequestReset_SendsHashBackedToken() {
	user := &domain.User{UserID: "u1", Email: "ada@example.com"}
	var storedHash string
	var emailedToken string

	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(user, nil).Once()
	s.userRepo.On("SetResetToken", s.ctx, "u1", mock.AnythingOfType("string"), mock.MatchedBy(func(t time.Time) bool {
		return time.Until(t) > 50*time.Minute && time.Until(t) <= time.Hour
	})).Run(func(args mock.Arguments) {
		storedHash = args.String(2)
	}).Return(nil).Once()
	s.sender.On("SendPasswordReset", mock.Anything, "ada@example.com", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			emailedToken = args.String(2)
		}).Return(nil).Once()

	err := s.service.RequestReset(s.ctx, "Ada@Example.com")

	s.Require().NoError(err)
	// The store holds only the hash of what went out by email.
	s.NotEmpty(emailedToken)
	s.NotEqual(emailedToken, storedHash)
	s.Equal(utils.HashToken(emailedToken), storedHash)
}

func (s *PasswordResetServiceTestSuite) TestRequestReset_UnknownEmailIsSilent() {
	s.userRepo.On("FindUserByEmail", s.ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.RequestReset(s.ctx, "ghost@example.com")

	// Same outcome as a known email: no error, nothing leaked.
	s.NoError(err)
	s.userRepo.AssertNotCalled(s.T(), "SetResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.sender.AssertNotCalled(s.T(), "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PasswordResetServiceTestSuite) TestRequestReset_DeliveryFailureIsSilent() {
	user := &domain.User{UserID: "u1", Email: "ada@example.com"}

	s.userRepo.On("FindUserByEmail", s.ctx, "ada@example.com").Return(user, nil).Once()
	s.userRepo.On("SetResetToken", s.ctx, "u1", mock.Anything, mock.Anything).Return(nil).Once()
	s.sender.On("SendPasswordReset", mock.Anything, "ada@example.com", mock.Anything).
		Return(errors.New("smtp down")).Times(4) // initial attempt + 3 retries

	err := s.service.RequestReset(s.ctx, "ada@example.com")

	s.NoError(err)
	s.sender.AssertExpectations(s.T())
}

func (s *PasswordResetServiceTestSuite) TestConsumeReset_Success() {
	token := "plaintext-reset-token"

	s.userRepo.On("ConsumeResetToken", s.ctx, utils.HashToken(token), mock.MatchedBy(func(h string) bool {
		return utils.CheckPasswordHash("NewSecret1", h)
	})).Return("u1", nil).Once()

	err := s.service.ConsumeReset(s.ctx, token, "NewSecret1")

	s.NoError(err)
	s.userRepo.AssertExpectations(s.T())
}

func (s *PasswordResetServiceTestSuite) TestConsumeReset_InvalidToken() {
	s.userRepo.On("ConsumeResetToken", s.ctx, mock.Anything, mock.Anything).
		Return("", apperrors.ErrInvalidOrExpiredResetToken).Once()

	err := s.service.ConsumeReset(s.ctx, "bad-token", "NewSecret1")

	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredResetToken)
}
