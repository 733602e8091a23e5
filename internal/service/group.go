// Package service provides business logic for the group membership ledger.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/passvault/passvault/internal/models"
)

// GroupLedger defines the persistence operations required by GroupService.
type GroupLedger interface {
	// GetMembership fetches the membership row for (group, userID).
	// Returns sql.ErrNoRows when the user is not a member.
	GetMembership(ctx context.Context, group string, userID int64) (*models.GroupMembership, error)
	// IsAdmin reports whether userID holds an admin row for group.
	IsAdmin(ctx context.Context, group string, userID int64) (bool, error)
	// CreateMembership inserts a new membership row.
	CreateMembership(ctx context.Context, m models.GroupMembership) error
	// PromoteToAdmin sets the admin flag on an existing row.
	PromoteToAdmin(ctx context.Context, group string, userID int64) error
	// ListGroupsForUser returns a summary per group the user belongs to.
	ListGroupsForUser(ctx context.Context, userID int64) ([]models.GroupSummary, error)
	// ListMembers returns all rows of a group joined with usernames.
	ListMembers(ctx context.Context, group string) ([]models.GroupMembership, error)
	// AdminCount returns the number of admin rows for the group.
	AdminCount(ctx context.Context, group string) (int, error)
	// DeleteMembership removes a membership row; absent rows are a no-op.
	DeleteMembership(ctx context.Context, group string, userID int64) error
}

// GroupService implements group creation, listing, and membership removal.
type GroupService struct {
	// ledger performs the data-layer operations.
	ledger GroupLedger
}

// NewGroupService constructs a GroupService using the provided ledger.
func NewGroupService(ledger GroupLedger) *GroupService {
	return &GroupService{ledger: ledger}
}

// maxGroupNameLen bounds group names, matching the schema CHECK constraint.
const maxGroupNameLen = 500

// CreateGroup creates a group by inserting the caller's first membership row
// with the admin flag set. If the caller already has a row for that group the
// call is idempotent: the row is promoted to admin and created=false is
// returned. The group name is trimmed first; an empty result fails with
// ErrEmptyGroupName.
func (s *GroupService) CreateGroup(ctx context.Context, callerID int64, groupName string) (created bool, err error) {
	groupName = strings.TrimSpace(groupName)
	if groupName == "" {
		return false, ErrEmptyGroupName
	}
	if len(groupName) > maxGroupNameLen {
		return false, ErrGroupNameTooLong
	}

	_, err = s.ledger.GetMembership(ctx, groupName, callerID)
	switch {
	case err == nil:
		// Already a member: promote, report "already exists".
		if err := s.ledger.PromoteToAdmin(ctx, groupName, callerID); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, sql.ErrNoRows):
		m := models.GroupMembership{GroupName: groupName, UserID: callerID, Admin: true}
		if err := s.ledger.CreateMembership(ctx, m); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// ListGroupsForUser returns every group the caller belongs to, with the total
// member count and the caller's admin flag.
func (s *GroupService) ListGroupsForUser(ctx context.Context, callerID int64) ([]models.GroupSummary, error) {
	return s.ledger.ListGroupsForUser(ctx, callerID)
}

// ListMembers returns all membership rows of the group joined with usernames.
// Only admins of the group may list its members; ErrNotAdmin otherwise.
func (s *GroupService) ListMembers(ctx context.Context, callerID int64, groupName string) ([]models.GroupMembership, error) {
	admin, err := s.ledger.IsAdmin(ctx, groupName, callerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotAdmin
	}
	return s.ledger.ListMembers(ctx, groupName)
}

// RemoveMember deletes the target's membership row. The caller must be an
// admin of the group. Removing any admin row that is the group's last one
// fails with ErrLastAdmin, whoever the target is. Removing a user who is not
// a member succeeds without effect.
func (s *GroupService) RemoveMember(ctx context.Context, callerID int64, groupName string, targetID int64) error {
	admin, err := s.ledger.IsAdmin(ctx, groupName, callerID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotAdmin
	}

	target, err := s.ledger.GetMembership(ctx, groupName, targetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if target.Admin {
		count, err := s.ledger.AdminCount(ctx, groupName)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAdmin
		}
	}

	return s.ledger.DeleteMembership(ctx, groupName, targetID)
}
