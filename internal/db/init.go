package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS passwords (
    password_id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    application_name TEXT NOT NULL,
    account_user_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_name TEXT NOT NULL CHECK (char_length(group_name) <= 500),
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    admin_status BOOLEAN NOT NULL DEFAULT FALSE,
    shared_password_id BIGINT,
    PRIMARY KEY (group_name, user_id)
);
`

// InitPostgres opens a PostgreSQL connection, verifies it, and ensures
// the schema exists. shared_password_id deliberately carries no foreign
// key: deleting a password must not fail or cascade through share rows;
// stale references are swept by StartStaleShareCleaner.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
