package services_test

import (
	"context"
	"time"

	"github.com/contactvault/backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepositoryFacade ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ConsumeResetToken(ctx context.Context, tokenHash string, newPasswordHash string) (string, error) {
	args := m.Called(ctx, tokenHash, newPasswordHash)
	return args.String(0), args.Error(1)
}

// --- Mock SessionRepository ---

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) RotateSession(ctx context.Context, refreshToken string, newAccessToken string, newAccessExpiresAt time.Time, newRefreshToken string, newRefreshExpiresAt time.Time) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken, newAccessToken, newAccessExpiresAt, newRefreshToken, newRefreshExpiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteSessionByRefreshToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteSessionsByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ContactRepositoryFacade ---

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, ownerUserID string, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, ownerUserID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) FindContacts(ctx context.Context, ownerUserID string, limit int, afterCreatedAt time.Time, afterContactID string) ([]domain.Contact, error) {
	args := m.Called(ctx, ownerUserID, limit, afterCreatedAt, afterContactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, ownerUserID string, contactID string) error {
	args := m.Called(ctx, ownerUserID, contactID)
	return args.Error(0)
}

// --- Mock email sender ---

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPasswordReset(ctx context.Context, toEmail string, token string) error {
	args := m.Called(ctx, toEmail, token)
	return args.Error(0)
}
