package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
	"github.com/finsight-pos/finsight-pos/internal/shared"
)

// Middleware guards routes behind bearer token authentication.
type Middleware struct {
	Tokens *TokenManager
	Logger *slog.Logger
}

// RequireAuth resolves the Authorization header and stores the user ID in
// the request context. Requests without a valid token get 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		userID, err := m.Tokens.Resolve(r.Context(), token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("reject unauthenticated request", slog.String("path", r.URL.Path))
			}
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing or expired token")
			return
		}
		ctx := shared.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
