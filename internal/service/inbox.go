// Package service provides the in-memory notification inbox.
package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/passvault/passvault/internal/models"
)

// UserDirectory defines the identity lookups required by InboxService.
type UserDirectory interface {
	// ResolveByUsername fetches a user by login name.
	// Returns sql.ErrNoRows when no such user exists.
	ResolveByUsername(ctx context.Context, username string) (*models.User, error)
}

// InboxService holds per-user notification queues in process memory.
// Messages do not survive a restart; the sharing core has no dependency
// on this store.
type InboxService struct {
	directory UserDirectory

	mu    sync.Mutex
	inbox map[int64][]*models.Message
}

// NewInboxService constructs an InboxService using the provided directory.
func NewInboxService(directory UserDirectory) *InboxService {
	return &InboxService{
		directory: directory,
		inbox:     make(map[int64][]*models.Message),
	}
}

// SendTrustedUserRequest enqueues a trusted-user request from sender to the
// user named targetUsername. Unknown targets fail with ErrUserNotFound;
// addressing yourself fails with ErrSelfRequest.
func (s *InboxService) SendTrustedUserRequest(ctx context.Context, sender *models.User, targetUsername string) error {
	target, err := s.directory.ResolveByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if target.ID == sender.ID {
		return ErrSelfRequest
	}

	s.enqueue(target.ID, &models.Message{
		ID:        uuid.NewString(),
		Type:      models.TrustedUserRequest,
		From:      sender.Username,
		Body:      "wants to add you as a trusted user",
		Timestamp: time.Now().UTC(),
		Status:    models.StatusPending,
	})
	return nil
}

// SendGroupInvitation enqueues an invitation to groupName from sender to the
// user named targetUsername. Unknown targets fail with ErrUserNotFound.
func (s *InboxService) SendGroupInvitation(ctx context.Context, sender *models.User, targetUsername, groupName string) error {
	target, err := s.directory.ResolveByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	s.enqueue(target.ID, &models.Message{
		ID:        uuid.NewString(),
		Type:      models.GroupInvitation,
		From:      sender.Username,
		GroupName: groupName,
		Body:      "invited you to join the group",
		Timestamp: time.Now().UTC(),
		Status:    models.StatusPending,
	})
	return nil
}

func (s *InboxService) enqueue(userID int64, msg *models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbox[userID] = append(s.inbox[userID], msg)
}

// ListPending returns copies of the user's pending messages, oldest first.
func (s *InboxService) ListPending(userID int64) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]models.Message, 0)
	for _, msg := range s.inbox[userID] {
		if msg.Status == models.StatusPending {
			pending = append(pending, *msg)
		}
	}
	return pending
}

// PendingCount returns the number of pending messages in the user's inbox.
func (s *InboxService) PendingCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, msg := range s.inbox[userID] {
		if msg.Status == models.StatusPending {
			count++
		}
	}
	return count
}

// Accept marks the message accepted. Unknown ids fail with ErrMessageNotFound;
// messages already acted on fail with ErrMessageProcessed.
func (s *InboxService) Accept(userID int64, messageID string) error {
	return s.resolve(userID, messageID, models.StatusAccepted)
}

// Reject marks the message rejected. Same failure modes as Accept.
func (s *InboxService) Reject(userID int64, messageID string) error {
	return s.resolve(userID, messageID, models.StatusRejected)
}

func (s *InboxService) resolve(userID int64, messageID string, status models.MessageStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range s.inbox[userID] {
		if msg.ID != messageID {
			continue
		}
		if msg.Status != models.StatusPending {
			return ErrMessageProcessed
		}
		msg.Status = status
		return nil
	}
	return ErrMessageNotFound
}
