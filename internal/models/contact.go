package models

import (
	"database/sql"
	"time"
)

// Contact is the database row shape for the contacts table.
type Contact struct {
	ContactID   string         `db:"contact_id"`
	OwnerUserID string         `db:"owner_user_id"`
	FirstName   string         `db:"first_name"`
	LastName    sql.NullString `db:"last_name"`
	Email       sql.NullString `db:"email"`
	Phone       sql.NullString `db:"phone"`
	Address     sql.NullString `db:"address"`
	PhotoURL    sql.NullString `db:"photo_url"`
	Favorite    bool           `db:"favorite"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
