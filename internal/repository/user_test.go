package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupDirectoryMock(t *testing.T) (*PostgresUserDirectory, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	dir := NewPostgresUserDirectory(db)
	cleanup := func() {
		db.Close()
	}
	return dir, mock, cleanup
}

func TestResolveByID_Found(t *testing.T) {
	dir, mock, cleanup := setupDirectoryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, username FROM users WHERE user_id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username"}).AddRow(int64(7), "alice"))

	user, err := dir.ResolveByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestResolveByUsername_NotFound(t *testing.T) {
	dir, mock, cleanup := setupDirectoryMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, username FROM users WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := dir.ResolveByUsername(context.Background(), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v; want sql.ErrNoRows", err)
	}
}
