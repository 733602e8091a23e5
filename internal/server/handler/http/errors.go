// Package http provides HTTP routing and handlers for the group-sharing API.
package http

import (
	"errors"
	"net/http"

	"github.com/passvault/passvault/internal/service"
)

// writeServiceError maps business-condition errors to HTTP statuses:
// validation failures to 400, missing admin rights to 403, absent or
// not-owned resources to 404, the last-admin guard to 409. Anything else
// is a persistence fault and surfaces as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyGroupName),
		errors.Is(err, service.ErrGroupNameTooLong),
		errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrMessageProcessed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotAdmin):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrPasswordNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMessageNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrLastAdmin):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
