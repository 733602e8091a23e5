// Package http provides HTTP routing and middleware configuration
// for the group-sharing service.
package http

import (
	"net/http"

	"github.com/passvault/passvault/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler serving the group-sharing
// API. It applies JSON content-type enforcement, request logging, and
// certificate-based authentication, and mounts the group, sharing, and
// message endpoints under /api.
//
// Routes:
//
//	GET    /api/groups                                → groupHandler.List
//	POST   /api/groups                                → groupHandler.Create
//	GET    /api/groups/{group}/members                → groupHandler.Members
//	DELETE /api/groups/{group}/members/{userID}       → groupHandler.RemoveMember
//	POST   /api/groups/share                          → shareHandler.Share
//	POST   /api/groups/share-all                      → shareHandler.ShareAll
//	POST   /api/groups/unshare                        → shareHandler.Unshare
//	GET    /api/groups/shared/passwords               → shareHandler.SharedWithMe
//	GET    /api/messages                              → messageHandler.List
//	GET    /api/messages/count                        → messageHandler.Count
//	POST   /api/messages/trusted-user-request         → messageHandler.TrustedUserRequest
//	POST   /api/messages/group-invitation             → messageHandler.GroupInvitation
//	POST   /api/messages/{id}/accept                  → messageHandler.Accept
//	POST   /api/messages/{id}/reject                  → messageHandler.Reject
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. CertAuth(directory)                  — enforces TLS client certificate auth
func NewRouter(
	groupHandler *GroupHandler,
	shareHandler *ShareHandler,
	messageHandler *MessageHandler,
	directory middleware.UserResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce certificate-based authentication
	r.Use(middleware.CertAuth(directory))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.List)
			r.Post("/", groupHandler.Create)
			r.Get("/{group}/members", groupHandler.Members)
			r.Delete("/{group}/members/{userID}", groupHandler.RemoveMember)

			r.Post("/share", shareHandler.Share)
			r.Post("/share-all", shareHandler.ShareAll)
			r.Post("/unshare", shareHandler.Unshare)
			r.Get("/shared/passwords", shareHandler.SharedWithMe)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", messageHandler.List)
			r.Get("/count", messageHandler.Count)
			r.Post("/trusted-user-request", messageHandler.TrustedUserRequest)
			r.Post("/group-invitation", messageHandler.GroupInvitation)
			r.Post("/{id}/accept", messageHandler.Accept)
			r.Post("/{id}/reject", messageHandler.Reject)
		})
	})

	return r
}
