// Package http provides HTTP handlers for the notification inbox.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/passvault/passvault/internal/middleware"
	"github.com/passvault/passvault/internal/models"
)

// InboxService defines the interface for inbox operations required by
// the MessageHandler.
type InboxService interface {
	// SendTrustedUserRequest enqueues a trusted-user request.
	SendTrustedUserRequest(ctx context.Context, sender *models.User, targetUsername string) error
	// SendGroupInvitation enqueues a group invitation.
	SendGroupInvitation(ctx context.Context, sender *models.User, targetUsername, groupName string) error
	// ListPending returns the user's pending messages.
	ListPending(userID int64) []models.Message
	// PendingCount returns the number of pending messages.
	PendingCount(userID int64) int
	// Accept marks a pending message accepted.
	Accept(userID int64, messageID string) error
	// Reject marks a pending message rejected.
	Reject(userID int64, messageID string) error
}

// MessageHandler handles HTTP requests for inbox messages.
type MessageHandler struct {
	// Inbox performs the underlying inbox operations.
	Inbox InboxService
}

// TrustedUserRequestBody represents the JSON payload for a trusted-user request.
type TrustedUserRequestBody struct {
	// TargetUsername names the recipient.
	TargetUsername string `json:"target_username"`
}

// GroupInvitationBody represents the JSON payload for a group invitation.
type GroupInvitationBody struct {
	// TargetUsername names the recipient.
	TargetUsername string `json:"target_username"`
	// GroupName is the group the recipient is invited to.
	GroupName string `json:"group_name"`
}

// List handles GET /api/messages.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Inbox.ListPending(user.ID))
}

// Count handles GET /api/messages/count.
func (h *MessageHandler) Count(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{
		"count": h.Inbox.PendingCount(user.ID),
	})
}

// TrustedUserRequest handles POST /api/messages/trusted-user-request.
func (h *MessageHandler) TrustedUserRequest(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var body TrustedUserRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TargetUsername == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.Inbox.SendTrustedUserRequest(r.Context(), user, body.TargetUsername); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Request sent successfully",
	})
}

// GroupInvitation handles POST /api/messages/group-invitation.
func (h *MessageHandler) GroupInvitation(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var body GroupInvitationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TargetUsername == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.Inbox.SendGroupInvitation(r.Context(), user, body.TargetUsername, body.GroupName); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Invitation sent successfully",
	})
}

// Accept handles POST /api/messages/{id}/accept.
func (h *MessageHandler) Accept(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	if err := h.Inbox.Accept(user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Message accepted",
	})
}

// Reject handles POST /api/messages/{id}/reject.
func (h *MessageHandler) Reject(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	if err := h.Inbox.Reject(user.ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Message rejected",
	})
}
