package httpserver

import (
	"net/http"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
)

// corsMethods are the methods the API routes use.
var corsMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// corsExposedHeaders lets browser clients read export filenames and
// rate-limit hints.
const corsExposedHeaders = "Content-Disposition,Retry-After"

const corsMaxAgeSeconds = "600"

// CORSMiddleware adds CORS headers for configured origins and answers
// preflight requests.
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.CORSAllowedOrigins))
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	allowMethods := strings.Join(append(append([]string(nil), corsMethods...), http.MethodOptions), ",")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		originOK := origin != "" && allowed[origin]

		if originOK {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Expose-Headers", corsExposedHeaders)
			if cfg.CORSAllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method != http.MethodOptions || origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Preflight. Unknown origins and methods get a bare 204 the browser rejects.
		if originOK && preflightMethodAllowed(r.Header.Get("Access-Control-Request-Method")) {
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", corsMaxAgeSeconds)
		} else {
			w.Header().Del("Access-Control-Allow-Origin")
			w.Header().Del("Access-Control-Expose-Headers")
			w.Header().Del("Access-Control-Allow-Credentials")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// preflightMethodAllowed accepts an empty method for clients that omit it.
func preflightMethodAllowed(method string) bool {
	if method == "" {
		return true
	}
	for _, m := range corsMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
