package middleware

import (
	"context"
	"net/http"

	"inkwell/internal/app/service"
	"inkwell/internal/common"
	"inkwell/internal/domain/model"
)

type contextKey string

const userCtxKey contextKey = "currentUser"

// SessionCookieName is the cookie carrying the opaque session ID.
const SessionCookieName = "session_id"

// SessionAuth resolves the session cookie into the current user for each
// request. Requests without a valid session pass through anonymous; the
// RequireAuthenticated guard is what rejects them.
type SessionAuth struct {
	auth *service.AuthService
}

func NewSessionAuth(auth *service.AuthService) *SessionAuth {
	return &SessionAuth{auth: auth}
}

func (sa *SessionAuth) Resolver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := sa.auth.Current(r.Context(), cookie.Value)
		if err != nil {
			// Expired or forged session: continue anonymous.
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests that did not resolve to a user.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user resolved for this request.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}
