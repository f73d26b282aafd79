package auth

import (
	"net/http"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
)

// Middleware puts the coach id from a Bearer token into the request
// context. Client, plan and export handlers read it through userctx.
type Middleware struct {
	service  *Service
	required bool
}

func NewMiddleware(cfg *config.Config, service *Service) *Middleware {
	return &Middleware{
		service:  service,
		required: cfg.AuthRequired,
	}
}

// Wrap authenticates every non-public request. Without AUTH_REQUIRED a
// missing token passes through and the request acts as the default owner;
// a bad token is always rejected.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicRoute(r) {
			next.ServeHTTP(w, r)
			return
		}

		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			if m.required {
				writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Bearer token required")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		coachID, err := m.coachFromHeader(header)
		if err != nil {
			writeErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(userctx.WithUserID(r.Context(), coachID)))
	})
}

func (m *Middleware) coachFromHeader(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return m.service.VerifyJWT(strings.TrimSpace(token))
}

// isPublicRoute covers liveness, sign-in and the reference food catalog.
func isPublicRoute(r *http.Request) bool {
	switch {
	case r.URL.Path == "/healthz":
		return true
	case strings.HasPrefix(r.URL.Path, "/v1/auth/"):
		return true
	case r.URL.Path == "/v1/food/catalog" && r.Method == http.MethodGet:
		return true
	}
	return false
}
