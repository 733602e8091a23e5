// Package repository provides persistence implementations backed by a
// PostgreSQL database.
package repository

import (
	"context"
	"database/sql"

	"github.com/passvault/passvault/internal/models"
)

// PostgresPasswordStore reads password display metadata from the passwords
// table. This service never touches credential payloads.
type PostgresPasswordStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPasswordStore creates a new PostgresPasswordStore using the
// provided *sql.DB.
func NewPostgresPasswordStore(db *sql.DB) *PostgresPasswordStore {
	return &PostgresPasswordStore{DB: db}
}

// GetOwned fetches the password with the given id only when it is owned by
// ownerID. A missing row and a row owned by someone else are indistinguishable:
// both return sql.ErrNoRows.
func (s *PostgresPasswordStore) GetOwned(ctx context.Context, passwordID, ownerID int64) (*models.Password, error) {
	var p models.Password
	err := s.DB.QueryRowContext(ctx, `
		SELECT password_id, user_id, application_name, account_user_name FROM passwords
		WHERE password_id = $1 AND user_id = $2
	`, passwordID, ownerID).Scan(&p.ID, &p.OwnerID, &p.ApplicationName, &p.AccountUserName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
