// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/apperr"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/models"
)

// TokenVerifier resolves a bearer token to the caller's identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

type AuthMiddleware struct {
	TV TokenVerifier
}

func NewAuthMiddleware(tv TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{TV: tv}
}

// BearerToken extracts the token from an "Authorization: bearer <token>"
// header. The scheme is case-insensitive.
func BearerToken(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(ah, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Auth rejects requests without a valid bearer token with 401 and stores the
// resolved identity in the request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			metrics.AuthFailures.WithLabelValues("token_missing").Inc()
			httpx.WriteErr(w, r, apperr.Unauthorized("token missing"))
			return
		}
		who, err := m.TV.Verify(r.Context(), token)
		if err != nil {
			httpx.WriteErr(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), who)))
	})
}
