package auth

import (
	"context"
	"net/http"

	"github.com/saulo-duarte/testsafe/internal/config"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// Middleware resolves the session cookie into a session id on the
// request context. Requests without a valid cookie pass through
// anonymously; handlers decide whether that means a redirect.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err == nil && cookie.Value != "" {
			claims, err := ValidateSessionToken(cookie.Value)
			if err != nil {
				config.WithContext(r.Context()).WithError(err).Debug("descartando cookie de sessão inválido")
				ClearSessionCookie(w)
			} else {
				r = r.WithContext(context.WithValue(r.Context(), sessionIDKey, claims.SessionID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SessionID returns the session id placed on the context by Middleware.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
