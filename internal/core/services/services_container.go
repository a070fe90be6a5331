package services

import (
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	portssvc "github.com/contactvault/backend/internal/core/ports/services"
	"github.com/contactvault/backend/internal/platform/config"
	"github.com/contactvault/backend/internal/platform/email"
	"github.com/contactvault/backend/internal/platform/storage"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, sender email.Sender, presigner storage.Presigner) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, repos.SessionRepo)
	container.Token = NewTokenService(cfg)
	container.Session = NewSessionService(repos.SessionRepo, container.Token)
	container.PasswordReset = NewPasswordResetService(cfg, repos.UserRepo, sender)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Contact = NewContactService(repos.ContactRepo)
	container.Upload = NewUploadService(presigner)

	return container
}
