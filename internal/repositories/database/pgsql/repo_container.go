package pgsql

import (
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository off a shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(db),
		SessionRepo: newPgxSessionRepository(db),
		ContactRepo: newPgxContactRepository(db),
	}
}
