package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactvault/backend/internal/apperrors"
	"github.com/contactvault/backend/internal/core/domain"
	portsrepo "github.com/contactvault/backend/internal/core/ports/repositories"
	"github.com/contactvault/backend/internal/models"
	"github.com/contactvault/backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxContactRepository struct {
	BaseRepository
}

func newPgxContactRepository(db *pgxpool.Pool) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

const (
	selectContactFields = `
		contact_id, owner_user_id, first_name, last_name, email, phone,
		address, photo_url, favorite, created_at, updated_at
	`

	insertContactQuery = `
		INSERT INTO contacts (contact_id, owner_user_id, first_name, last_name, email, phone, address, photo_url, favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	findContactByIDQuery = `
		SELECT ` + selectContactFields + `
		FROM contacts
		WHERE owner_user_id = $1 AND contact_id = $2;
	`

	findContactsFirstPageQuery = `
		SELECT ` + selectContactFields + `
		FROM contacts
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, contact_id DESC
		LIMIT $2;
	`

	findContactsAfterQuery = `
		SELECT ` + selectContactFields + `
		FROM contacts
		WHERE owner_user_id = $1 AND (created_at, contact_id) < ($2, $3)
		ORDER BY created_at DESC, contact_id DESC
		LIMIT $4;
	`

	updateContactQuery = `
		UPDATE contacts
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    address = $5, photo_url = $6, favorite = $7, updated_at = $8
		WHERE owner_user_id = $9 AND contact_id = $10;
	`

	deleteContactQuery = `
		DELETE FROM contacts WHERE owner_user_id = $1 AND contact_id = $2;
	`
)

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	_, err := r.Pool.Exec(ctx, insertContactQuery,
		m.ContactID,
		m.OwnerUserID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Address,
		m.PhotoURL,
		m.Favorite,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, ownerUserID string, contactID string) (*domain.Contact, error) {
	var m models.Contact
	err := r.Pool.QueryRow(ctx, findContactByIDQuery, ownerUserID, contactID).Scan(
		&m.ContactID,
		&m.OwnerUserID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.PhotoURL,
		&m.Favorite,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact by ID %s: %w", contactID, err)
	}
	c := mapping.ToDomainContact(m)
	return &c, nil
}

func (r *PgxContactRepository) FindContacts(ctx context.Context, ownerUserID string, limit int, afterCreatedAt time.Time, afterContactID string) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error
	if afterContactID == "" {
		rows, err = r.Pool.Query(ctx, findContactsFirstPageQuery, ownerUserID, limit)
	} else {
		rows, err = r.Pool.Query(ctx, findContactsAfterQuery, ownerUserID, afterCreatedAt, afterContactID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	modelContacts := []models.Contact{}
	for rows.Next() {
		var m models.Contact
		err := rows.Scan(
			&m.ContactID,
			&m.OwnerUserID,
			&m.FirstName,
			&m.LastName,
			&m.Email,
			&m.Phone,
			&m.Address,
			&m.PhotoURL,
			&m.Favorite,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		modelContacts = append(modelContacts, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", rows.Err())
	}

	return mapping.ToDomainContactSlice(modelContacts), nil
}

func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	cmdTag, err := r.Pool.Exec(ctx, updateContactQuery,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Address,
		m.PhotoURL,
		m.Favorite,
		m.UpdatedAt,
		m.OwnerUserID,
		m.ContactID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update contact query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contact not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxContactRepository) DeleteContact(ctx context.Context, ownerUserID string, contactID string) error {
	cmdTag, err := r.Pool.Exec(ctx, deleteContactQuery, ownerUserID, contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contact not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
