// Package service provides business logic for password sharing.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/passvault/passvault/internal/models"
)

// PasswordStore defines the ownership-checked read required by ShareService.
type PasswordStore interface {
	// GetOwned fetches a password only when owned by ownerID.
	// Missing and not-owned both return sql.ErrNoRows.
	GetOwned(ctx context.Context, passwordID, ownerID int64) (*models.Password, error)
}

// ShareLedger defines the ledger operations required by ShareService.
type ShareLedger interface {
	// IsAdmin reports whether userID holds an admin row for group.
	IsAdmin(ctx context.Context, group string, userID int64) (bool, error)
	// ShareWithUsers assigns the password to each target row in one
	// transaction, inserting non-admin rows for non-members.
	ShareWithUsers(ctx context.Context, group string, passwordID int64, userIDs []int64) error
	// ShareWithAllMembers assigns the password to every row of the group.
	ShareWithAllMembers(ctx context.Context, group string, passwordID int64) error
	// UnshareFromUsers clears share references matching passwordID exactly.
	UnshareFromUsers(ctx context.Context, group string, passwordID int64, userIDs []int64) error
	// ListSharedWith returns passwords shared with the user on non-admin rows.
	ListSharedWith(ctx context.Context, userID int64) ([]models.SharedPassword, error)
}

// ShareService layers sharing operations over the ledger and password store.
type ShareService struct {
	passwords PasswordStore
	ledger    ShareLedger
}

// NewShareService constructs a ShareService with the provided store and ledger.
func NewShareService(passwords PasswordStore, ledger ShareLedger) *ShareService {
	return &ShareService{passwords: passwords, ledger: ledger}
}

// checkShareRights verifies that the caller owns the password and administers
// the group. Ownership failure surfaces as ErrPasswordNotFound regardless of
// whether the password exists.
func (s *ShareService) checkShareRights(ctx context.Context, callerID, passwordID int64, groupName string) error {
	if _, err := s.passwords.GetOwned(ctx, passwordID, callerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPasswordNotFound
		}
		return err
	}

	admin, err := s.ledger.IsAdmin(ctx, groupName, callerID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotAdmin
	}
	return nil
}

// SharePassword shares the caller's password with the listed users in the
// group. Existing members get the reference overwritten; non-members are
// added as non-admin members carrying it. The whole target list commits as
// one unit of work.
func (s *ShareService) SharePassword(ctx context.Context, callerID, passwordID int64, groupName string, targetIDs []int64) error {
	if err := s.checkShareRights(ctx, callerID, passwordID, groupName); err != nil {
		return err
	}
	return s.ledger.ShareWithUsers(ctx, groupName, passwordID, targetIDs)
}

// ShareWithAllMembers shares the caller's password with every existing member
// of the group, the caller's own row and other admins' rows included.
func (s *ShareService) ShareWithAllMembers(ctx context.Context, callerID, passwordID int64, groupName string) error {
	if err := s.checkShareRights(ctx, callerID, passwordID, groupName); err != nil {
		return err
	}
	return s.ledger.ShareWithAllMembers(ctx, groupName, passwordID)
}

// UnsharePassword clears the share reference on the listed users' rows, but
// only where the stored reference matches passwordID. The caller must be an
// admin of the group; unsharing does not require password ownership, so a
// password whose owner left can still be revoked.
func (s *ShareService) UnsharePassword(ctx context.Context, callerID int64, groupName string, passwordID int64, targetIDs []int64) error {
	admin, err := s.ledger.IsAdmin(ctx, groupName, callerID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotAdmin
	}
	return s.ledger.UnshareFromUsers(ctx, groupName, passwordID, targetIDs)
}

// ListSharedWithMe returns every password shared with the caller through a
// non-admin membership row, joined with display metadata and the group name.
// A caller holding rows in several groups gets one entry per row.
func (s *ShareService) ListSharedWithMe(ctx context.Context, callerID int64) ([]models.SharedPassword, error) {
	return s.ledger.ListSharedWith(ctx, callerID)
}
