// Package service provides business-logic services for group membership,
// password sharing, and the notification inbox, delegating persistence to
// repository interfaces.
package service

import "errors"

// Business-condition errors surfaced to the transport layer. None of these
// represent transient faults, so none are retried.
var (
	// ErrEmptyGroupName signals a group name that is blank after trimming.
	ErrEmptyGroupName = errors.New("group name is empty")
	// ErrGroupNameTooLong signals a group name over 500 characters.
	ErrGroupNameTooLong = errors.New("group name exceeds 500 characters")
	// ErrNotAdmin signals that the caller holds no admin row for the group.
	ErrNotAdmin = errors.New("caller is not a group admin")
	// ErrPasswordNotFound covers both a missing password and one owned by
	// someone else, so a caller cannot probe for existence.
	ErrPasswordNotFound = errors.New("password not found or access denied")
	// ErrLastAdmin signals a removal that would leave the group without admins.
	ErrLastAdmin = errors.New("cannot remove the only admin")
	// ErrUserNotFound signals an unknown target user.
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfRequest signals a trusted-user request addressed to the sender.
	ErrSelfRequest = errors.New("cannot send request to yourself")
	// ErrMessageNotFound signals an unknown inbox message id.
	ErrMessageNotFound = errors.New("message not found")
	// ErrMessageProcessed signals accept/reject of a non-pending message.
	ErrMessageProcessed = errors.New("message already processed")
)
