// Package http provides HTTP handlers for password sharing.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/passvault/passvault/internal/middleware"
	"github.com/passvault/passvault/internal/models"
)

// ShareService defines the interface for sharing operations required by
// the ShareHandler.
type ShareService interface {
	// SharePassword shares the caller's password with the listed users.
	SharePassword(ctx context.Context, callerID, passwordID int64, groupName string, targetIDs []int64) error
	// ShareWithAllMembers shares the caller's password with every member.
	ShareWithAllMembers(ctx context.Context, callerID, passwordID int64, groupName string) error
	// UnsharePassword clears matching share references on the listed users.
	UnsharePassword(ctx context.Context, callerID int64, groupName string, passwordID int64, targetIDs []int64) error
	// ListSharedWithMe returns the passwords shared with the caller.
	ListSharedWithMe(ctx context.Context, callerID int64) ([]models.SharedPassword, error)
}

// ShareHandler handles HTTP requests for sharing and unsharing passwords.
type ShareHandler struct {
	// ShareService performs the underlying sharing operations.
	ShareService ShareService
}

// ShareRequest represents the JSON payload for share and unshare calls.
type ShareRequest struct {
	// PasswordID is the password being shared or unshared.
	PasswordID int64 `json:"password_id"`
	// GroupName is the group the operation applies to.
	GroupName string `json:"group_name"`
	// UserIDs lists the target members. Ignored by share-all.
	UserIDs []int64 `json:"user_ids"`
}

// Share handles POST /api/groups/share.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.ShareService.SharePassword(r.Context(), user.ID, req.PasswordID, req.GroupName, req.UserIDs); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Password shared successfully",
	})
}

// ShareAll handles POST /api/groups/share-all.
func (h *ShareHandler) ShareAll(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.ShareService.ShareWithAllMembers(r.Context(), user.ID, req.PasswordID, req.GroupName); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Password shared with all members",
	})
}

// Unshare handles POST /api/groups/unshare.
func (h *ShareHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.ShareService.UnsharePassword(r.Context(), user.ID, req.GroupName, req.PasswordID, req.UserIDs); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Password unshared successfully",
	})
}

// SharedWithMe handles GET /api/groups/shared/passwords.
func (h *ShareHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	shared, err := h.ShareService.ListSharedWithMe(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if shared == nil {
		shared = []models.SharedPassword{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(shared)
}
