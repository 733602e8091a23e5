// Package repository provides persistence implementations backed by a
// PostgreSQL database.
package repository

import (
	"context"
	"database/sql"

	"github.com/passvault/passvault/internal/models"
)

// PostgresUserDirectory resolves user identities from the users table.
type PostgresUserDirectory struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserDirectory creates a new PostgresUserDirectory with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL
// instance.
func NewPostgresUserDirectory(db *sql.DB) *PostgresUserDirectory {
	return &PostgresUserDirectory{DB: db}
}

// ResolveByID fetches the user with the given identifier.
// Returns sql.ErrNoRows when no such user exists.
func (d *PostgresUserDirectory) ResolveByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := d.DB.QueryRowContext(
		ctx,
		`SELECT user_id, username FROM users WHERE user_id = $1`,
		id,
	).Scan(&user.ID, &user.Username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveByUsername fetches the user with the given username.
// Returns sql.ErrNoRows when no such user exists.
func (d *PostgresUserDirectory) ResolveByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := d.DB.QueryRowContext(
		ctx,
		`SELECT user_id, username FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
