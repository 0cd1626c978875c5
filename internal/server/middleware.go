package server

import (
	"context"
	"net/http"
)

type contextKey string

// identityKey holds the authenticated caller's auth-provider subject.
const identityKey contextKey = "identity"

// identityHeader is set by the auth gateway in front of this service after
// it has verified the caller's session. Session verification itself lives
// at that boundary; this service only resolves the forwarded subject.
const identityHeader = "X-User-ID"

// requireIdentity rejects requests that carry no caller identity and
// stores the subject in the request context for handlers.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := r.Header.Get(identityHeader)
		if subject == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerIdentity returns the auth subject stored by requireIdentity.
func callerIdentity(ctx context.Context) string {
	subject, _ := ctx.Value(identityKey).(string)
	return subject
}
