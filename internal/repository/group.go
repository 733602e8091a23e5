// Package repository provides persistence implementations for the group
// membership ledger using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/passvault/passvault/internal/models"
)

// PostgresGroupLedger implements group membership and sharing operations
// against the group_members table.
type PostgresGroupLedger struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresGroupLedger creates a new PostgresGroupLedger using the provided
// *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresGroupLedger(db *sql.DB) *PostgresGroupLedger {
	return &PostgresGroupLedger{DB: db}
}

// GetMembership fetches the membership row for (group, userID).
// Returns sql.ErrNoRows when the user is not a member.
func (l *PostgresGroupLedger) GetMembership(ctx context.Context, group string, userID int64) (*models.GroupMembership, error) {
	var m models.GroupMembership
	err := l.DB.QueryRowContext(ctx, `
		SELECT group_name, user_id, admin_status, shared_password_id FROM group_members
		WHERE group_name = $1 AND user_id = $2
	`, group, userID).Scan(&m.GroupName, &m.UserID, &m.Admin, &m.SharedPasswordID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// IsAdmin reports whether userID holds an admin membership row for group.
func (l *PostgresGroupLedger) IsAdmin(ctx context.Context, group string, userID int64) (bool, error) {
	var admin bool
	err := l.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM group_members WHERE group_name = $1 AND user_id = $2 AND admin_status = true)`,
		group, userID,
	).Scan(&admin)
	return admin, err
}

// CreateMembership inserts a new membership row.
func (l *PostgresGroupLedger) CreateMembership(ctx context.Context, m models.GroupMembership) error {
	_, err := l.DB.ExecContext(ctx, `
		INSERT INTO group_members (group_name, user_id, admin_status, shared_password_id)
		VALUES ($1, $2, $3, $4)
	`, m.GroupName, m.UserID, m.Admin, m.SharedPasswordID)
	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// PromoteToAdmin sets admin_status on an existing membership row.
func (l *PostgresGroupLedger) PromoteToAdmin(ctx context.Context, group string, userID int64) error {
	_, err := l.DB.ExecContext(ctx, `
		UPDATE group_members SET admin_status = true WHERE group_name = $1 AND user_id = $2
	`, group, userID)
	if err != nil {
		return fmt.Errorf("promote to admin: %w", err)
	}
	return nil
}

// ListGroupsForUser returns one summary per group the user belongs to,
// carrying the total member count and the user's admin flag.
func (l *PostgresGroupLedger) ListGroupsForUser(ctx context.Context, userID int64) ([]models.GroupSummary, error) {
	rows, err := l.DB.QueryContext(ctx, `
		SELECT m.group_name, m.admin_status,
		       (SELECT COUNT(*) FROM group_members g WHERE g.group_name = m.group_name)
		  FROM group_members m WHERE m.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListGroupsForUser: %w", err)
	}
	defer rows.Close()

	var groups []models.GroupSummary
	for rows.Next() {
		var g models.GroupSummary
		if err := rows.Scan(&g.GroupName, &g.Admin, &g.MemberCount); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListMembers returns all membership rows for the group, each joined with
// the member's username.
func (l *PostgresGroupLedger) ListMembers(ctx context.Context, group string) ([]models.GroupMembership, error) {
	rows, err := l.DB.QueryContext(ctx, `
		SELECT m.group_name, m.user_id, m.admin_status, m.shared_password_id, u.username
		  FROM group_members m JOIN users u ON u.user_id = m.user_id
		 WHERE m.group_name = $1
	`, group)
	if err != nil {
		return nil, fmt.Errorf("ListMembers: %w", err)
	}
	defer rows.Close()

	var members []models.GroupMembership
	for rows.Next() {
		var m models.GroupMembership
		if err := rows.Scan(&m.GroupName, &m.UserID, &m.Admin, &m.SharedPasswordID, &m.Username); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AdminCount returns the number of admin membership rows for the group.
func (l *PostgresGroupLedger) AdminCount(ctx context.Context, group string) (int, error) {
	var count int
	err := l.DB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM group_members WHERE group_name = $1 AND admin_status = true`,
		group,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("AdminCount: %w", err)
	}
	return count, nil
}

// DeleteMembership removes the membership row for (group, userID).
// Deleting a row that does not exist is not an error.
func (l *PostgresGroupLedger) DeleteMembership(ctx context.Context, group string, userID int64) error {
	_, err := l.DB.ExecContext(ctx, `
		DELETE FROM group_members WHERE group_name = $1 AND user_id = $2
	`, group, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// ShareWithUsers assigns passwordID to each target's membership row within a
// single transaction. Existing members keep their admin flag and get the
// reference overwritten; non-members are inserted as non-admin rows carrying
// the reference. Readers see either none or all of the batch.
func (l *PostgresGroupLedger) ShareWithUsers(ctx context.Context, group string, passwordID int64, userIDs []int64) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, id := range userIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO group_members (group_name, user_id, admin_status, shared_password_id)
			VALUES ($1, $2, false, $3)
			ON CONFLICT (group_name, user_id) DO UPDATE SET
				shared_password_id = EXCLUDED.shared_password_id
		`, group, id, passwordID)
		if err != nil {
			return fmt.Errorf("share upsert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ShareWithAllMembers assigns passwordID to every existing membership row of
// the group, the sharer's and other admins' rows included.
func (l *PostgresGroupLedger) ShareWithAllMembers(ctx context.Context, group string, passwordID int64) error {
	_, err := l.DB.ExecContext(ctx, `
		UPDATE group_members SET shared_password_id = $1 WHERE group_name = $2
	`, passwordID, group)
	if err != nil {
		return fmt.Errorf("share all: %w", err)
	}
	return nil
}

// UnshareFromUsers clears the share reference on the targets' rows, but only
// where the stored reference matches passwordID exactly. Rows holding a
// different reference are left untouched.
func (l *PostgresGroupLedger) UnshareFromUsers(ctx context.Context, group string, passwordID int64, userIDs []int64) error {
	query := `
		UPDATE group_members SET shared_password_id = NULL
		 WHERE group_name = $1 AND shared_password_id = $2 AND user_id = ANY($3)
	`
	_, err := l.DB.ExecContext(ctx, query, group, passwordID, pq.Array(userIDs))
	if err != nil {
		return fmt.Errorf("unshare: %w", err)
	}
	return nil
}

// ListSharedWith returns the passwords shared with userID across all groups
// where the user is a non-admin member, joined with display metadata.
func (l *PostgresGroupLedger) ListSharedWith(ctx context.Context, userID int64) ([]models.SharedPassword, error) {
	rows, err := l.DB.QueryContext(ctx, `
		SELECT p.password_id, p.application_name, p.account_user_name, m.group_name
		  FROM group_members m JOIN passwords p ON p.password_id = m.shared_password_id
		 WHERE m.user_id = $1 AND m.admin_status = false AND m.shared_password_id IS NOT NULL
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListSharedWith: %w", err)
	}
	defer rows.Close()

	var shared []models.SharedPassword
	for rows.Next() {
		var s models.SharedPassword
		if err := rows.Scan(&s.PasswordID, &s.ApplicationName, &s.AccountUserName, &s.GroupName); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		shared = append(shared, s)
	}
	return shared, rows.Err()
}
