package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/DevGolamSever/mind-ease/internal/model/user"
	"github.com/DevGolamSever/mind-ease/pkg/utils"
)

type contextKey string

const sessionKey contextKey = "session"

// Verifier checks a bearer token and resolves the session behind it.
type Verifier interface {
	Verify(token string) (user.Session, error)
}

// RequireSession rejects requests without a live session. The token comes
// from the Authorization header, or from a token query parameter for
// EventSource and WebSocket clients that cannot set headers.
func RequireSession(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing token")
				return
			}

			session, err := verifier.Verify(token)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the authenticated session stored on the request
// context.
func SessionFrom(ctx context.Context) (user.Session, bool) {
	session, ok := ctx.Value(sessionKey).(user.Session)
	return session, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
