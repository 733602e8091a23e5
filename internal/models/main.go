// Package models defines the core data structures for users, passwords,
// group memberships, and inbox messages.
package models

import "time"

// User represents an application user resolved from the directory.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"user_id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
}

// Password holds display metadata for a stored credential.
// The encrypted payload itself never passes through this service.
type Password struct {
	// ID is the unique identifier for the password entry.
	ID int64 `json:"password_id"`
	// OwnerID is the identifier of the user who owns the entry.
	OwnerID int64 `json:"user_id"`
	// ApplicationName is the site or application the credential belongs to.
	ApplicationName string `json:"application_name"`
	// AccountUserName is the account name used at that application.
	AccountUserName string `json:"account_user_name"`
}

// GroupMembership represents one user's relationship to one group.
// A (GroupName, UserID) pair identifies at most one row.
type GroupMembership struct {
	// GroupName is the name of the group.
	GroupName string `json:"group_name"`
	// UserID is the identifier of the member.
	UserID int64 `json:"user_id"`
	// Admin reports whether the member manages the group.
	Admin bool `json:"admin_status"`
	// SharedPasswordID points at a password shared with this member,
	// or nil when nothing is shared on this row.
	SharedPasswordID *int64 `json:"password_id"`
	// Username is the member's login name, joined from the directory.
	Username string `json:"username,omitempty"`
}

// GroupSummary describes one group from a single member's point of view.
type GroupSummary struct {
	// GroupName is the name of the group.
	GroupName string `json:"group_name"`
	// MemberCount is the total number of membership rows in the group.
	MemberCount int `json:"member_count"`
	// Admin reports whether the requesting user administers the group.
	Admin bool `json:"admin_status"`
}

// SharedPassword is one entry of the "shared with me" listing: password
// display metadata joined with the group it was shared through.
type SharedPassword struct {
	// PasswordID is the identifier of the shared password.
	PasswordID int64 `json:"password_id"`
	// ApplicationName is the site or application of the credential.
	ApplicationName string `json:"application_name"`
	// AccountUserName is the account name at that application.
	AccountUserName string `json:"account_user_name"`
	// GroupName is the group through which the password was shared.
	GroupName string `json:"group_name"`
}

// MessageType identifies the kind of an inbox message.
type MessageType string

const (
	// TrustedUserRequest asks the recipient to become a trusted user.
	TrustedUserRequest MessageType = "trusted_user_request"
	// GroupInvitation invites the recipient to join a group.
	GroupInvitation MessageType = "group_invitation"
)

// MessageStatus tracks the lifecycle of an inbox message.
type MessageStatus string

const (
	// StatusPending means the recipient has not acted on the message.
	StatusPending MessageStatus = "pending"
	// StatusAccepted means the recipient accepted the request.
	StatusAccepted MessageStatus = "accepted"
	// StatusRejected means the recipient declined the request.
	StatusRejected MessageStatus = "rejected"
)

// Message is one notification in a user's inbox.
type Message struct {
	// ID is the unique identifier for the message.
	ID string `json:"id"`
	// Type discriminates the message variant.
	Type MessageType `json:"type"`
	// From is the username of the sender.
	From string `json:"from"`
	// GroupName is set on group invitations only.
	GroupName string `json:"group_name,omitempty"`
	// Body is the human-readable message text.
	Body string `json:"message"`
	// Timestamp records when the message was sent.
	Timestamp time.Time `json:"timestamp"`
	// Status is the current lifecycle state.
	Status MessageStatus `json:"status"`
}
