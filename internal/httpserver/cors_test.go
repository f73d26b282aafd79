package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
)

const appOrigin = "https://coach.example.com"

func corsConfig() *config.Config {
	return &config.Config{
		CORSAllowedOrigins:   []string{" " + appOrigin + " ", ""},
		CORSAllowCredentials: true,
	}
}

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		path        string
		method      string
		wantAllowed bool
	}{
		{"put selection", appOrigin, "/v1/food/selection?client_id=x", http.MethodPut, true},
		{"generate plan", appOrigin, "/v1/meal/plan/generate", http.MethodPost, true},
		{"patch client", appOrigin, "/v1/clients/abc", "patch", true},
		{"delete plan", appOrigin, "/v1/meal/plan?client_id=x", http.MethodDelete, true},
		{"no requested method", appOrigin, "/v1/meal/plan", "", true},
		{"unrouted method", appOrigin, "/v1/meal/plan", "TRACE", false},
		{"unknown origin", "https://evil.example.com", "/v1/food/selection", http.MethodPut, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(corsConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be called for preflight")
			}))

			req := httptest.NewRequest(http.MethodOptions, tt.path, nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method != "" {
				req.Header.Set("Access-Control-Request-Method", tt.method)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusNoContent {
				t.Errorf("expected 204, got %d", rr.Code)
			}
			gotOrigin := rr.Header().Get("Access-Control-Allow-Origin")
			gotMethods := rr.Header().Get("Access-Control-Allow-Methods")
			if !tt.wantAllowed {
				if gotOrigin != "" || gotMethods != "" {
					t.Errorf("expected bare 204, got origin=%q methods=%q", gotOrigin, gotMethods)
				}
				return
			}
			if gotOrigin != appOrigin {
				t.Errorf("Allow-Origin = %q", gotOrigin)
			}
			for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"} {
				if !strings.Contains(gotMethods, m) {
					t.Errorf("Allow-Methods %q missing %s", gotMethods, m)
				}
			}
			if got := rr.Header().Get("Access-Control-Max-Age"); got != "600" {
				t.Errorf("expected Max-Age=600, got %q", got)
			}
		})
	}
}

func TestCORS_ExportExposesDownloadHeaders(t *testing.T) {
	handler := CORSMiddleware(corsConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="meal-grocery-v1.csv"`)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/meal/plan/export?client_id=x&format=csv&kind=grocery", nil)
	req.Header.Set("Origin", appOrigin)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != appOrigin {
		t.Errorf("Allow-Origin = %q", got)
	}
	exposed := rr.Header().Get("Access-Control-Expose-Headers")
	if !strings.Contains(exposed, "Content-Disposition") || !strings.Contains(exposed, "Retry-After") {
		t.Errorf("Expose-Headers = %q", exposed)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected Allow-Credentials=true, got %q", got)
	}
	if got := rr.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q", got)
	}
}

func TestCORS_DisallowedOriginStillServed(t *testing.T) {
	innerCalled := false
	handler := CORSMiddleware(corsConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		innerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/meal/today?client_id=x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !innerCalled {
		t.Error("expected inner handler to be called for non-OPTIONS request")
	}
	for _, h := range []string{"Access-Control-Allow-Origin", "Access-Control-Expose-Headers", "Access-Control-Allow-Credentials"} {
		if got := rr.Header().Get(h); got != "" {
			t.Errorf("expected no %s header, got %q", h, got)
		}
	}
}

func TestCORS_OptionsWithoutOriginReachesRouter(t *testing.T) {
	innerCalled := false
	handler := CORSMiddleware(corsConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		innerCalled = true
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/clients", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !innerCalled || rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("called=%v status=%d", innerCalled, rr.Code)
	}
}
