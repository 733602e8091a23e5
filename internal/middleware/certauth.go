// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/passvault/passvault/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// UserResolver resolves a username to a directory user.
type UserResolver interface {
	ResolveByUsername(ctx context.Context, username string) (*models.User, error)
}

// CertAuth returns a middleware that enforces mutual TLS authentication.
//
// It checks whether the incoming HTTP request carries a valid client
// certificate, takes the Common Name (CN) as the caller's username, and
// resolves it against the user directory. Requests without a certificate are
// rejected with 401; certificates naming an unknown user are rejected with
// 401 as well, since the transport vouched for a name the directory has
// never seen.
//
// On success the resolved user is stored in the request context for
// downstream handlers.
func CertAuth(directory UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil || len(r.TLS.PeerCertificates) == 0 {
				http.Error(w, "no client certificate provided", http.StatusUnauthorized)
				return
			}
			cert := r.TLS.PeerCertificates[0]

			user, err := directory.ResolveByUsername(r.Context(), cert.Subject.CommonName)
			if err != nil {
				http.Error(w, "unknown user", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext extracts the authenticated user from the request context.
// Returns nil if no user was stored.
func GetUserFromContext(ctx context.Context) *models.User {
	val := ctx.Value(userKey)
	if u, ok := val.(*models.User); ok {
		return u
	}
	return nil
}
