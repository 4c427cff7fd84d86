package middleware

import (
	"context"
	"net/http"

	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
)

const UserIDHeader = "X-User-ID"

type sessionContextKey struct{}

// Session resolves the caller's identity header into an explicit session
// on the request context. Requests without the header pass through with no
// session; each operation decides whether it requires one. The auth front
// that issues the header is outside this service.
func Session(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := r.Header.Get(UserIDHeader)
			if uid == "" {
				next.ServeHTTP(w, r)
				return
			}

			session := &models.Session{UID: uid}
			if user, err := userRepo.GetByID(r.Context(), uid); err == nil && user != nil {
				session.DisplayName = user.DisplayName()
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session set by the Session middleware,
// or nil when no one is signed in.
func SessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionContextKey{}).(*models.Session)
	return session
}
