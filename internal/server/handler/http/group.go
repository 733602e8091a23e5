// Package http provides HTTP handlers for group membership management.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/passvault/passvault/internal/middleware"
	"github.com/passvault/passvault/internal/models"
)

// GroupService defines the interface for group ledger operations required
// by the GroupHandler.
type GroupService interface {
	// CreateGroup creates a group or promotes an existing membership row.
	// created reports whether a new row was inserted.
	CreateGroup(ctx context.Context, callerID int64, groupName string) (created bool, err error)
	// ListGroupsForUser returns a summary per group the caller belongs to.
	ListGroupsForUser(ctx context.Context, callerID int64) ([]models.GroupSummary, error)
	// ListMembers returns a group's membership rows; admin-only.
	ListMembers(ctx context.Context, callerID int64, groupName string) ([]models.GroupMembership, error)
	// RemoveMember deletes the target's membership row; admin-only.
	RemoveMember(ctx context.Context, callerID int64, groupName string, targetID int64) error
}

// GroupHandler handles HTTP requests for group management.
type GroupHandler struct {
	// GroupService performs the underlying ledger operations.
	GroupService GroupService
}

// CreateGroupRequest represents the JSON payload for group creation.
type CreateGroupRequest struct {
	// GroupName is the name of the group to create.
	GroupName string `json:"group_name"`
}

// Create handles POST /api/groups.
// Responds 201 with a success envelope when a new group was created, or
// 200 when the caller already had a membership row for that name.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	created, err := h.GroupService.CreateGroup(r.Context(), user.ID, req.GroupName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	message := "Group already exists"
	if created {
		status = http.StatusCreated
		message = "Group created successfully"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
	})
}

// List handles GET /api/groups.
// Returns one entry per group the caller belongs to, with the total member
// count and the caller's admin flag.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	groups, err := h.GroupService.ListGroupsForUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if groups == nil {
		groups = []models.GroupSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(groups)
}

// Members handles GET /api/groups/{group}/members.
// Only group admins may list members.
func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	group := chi.URLParam(r, "group")

	members, err := h.GroupService.ListMembers(r.Context(), user.ID, group)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if members == nil {
		members = []models.GroupMembership{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(members)
}

// RemoveMember handles DELETE /api/groups/{group}/members/{userID}.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	group := chi.URLParam(r, "group")

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.GroupService.RemoveMember(r.Context(), user.ID, group, targetID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Member removed successfully",
	})
}
