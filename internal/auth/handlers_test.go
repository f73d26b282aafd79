package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/userctx"
	"github.com/golang-jwt/jwt/v5"
)

func testConfig(mode string, required bool) *config.Config {
	return &config.Config{
		AuthMode:      mode,
		AuthRequired:  required,
		JWTSecret:     "test-secret-key-for-testing-only",
		JWTIssuer:     "meal-coach-test",
		JWTTTLMinutes: 60,
	}
}

func TestHandleDevAuth(t *testing.T) {
	service := NewService(testConfig(config.AuthModeDev, true))
	handler := NewHandlers(service)

	t.Run("DefaultUser", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/auth/dev", nil)
		w := httptest.NewRecorder()

		handler.HandleDevAuth(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp DevAuthResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.AccessToken == "" {
			t.Error("expected access_token not empty")
		}
		if resp.TokenType != "Bearer" {
			t.Errorf("expected token_type Bearer, got %q", resp.TokenType)
		}
		if resp.ExpiresIn != int64(time.Hour.Seconds()) {
			t.Errorf("expected expires_in 3600, got %d", resp.ExpiresIn)
		}
		if resp.UserID != "dev-user" {
			t.Errorf("expected user_id dev-user, got %q", resp.UserID)
		}
	})

	t.Run("ExplicitUser", func(t *testing.T) {
		body, _ := json.Marshal(DevAuthRequest{UserID: "coach-42"})
		req := httptest.NewRequest("POST", "/v1/auth/dev", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.HandleDevAuth(w, req)

		var resp DevAuthResponse
		json.NewDecoder(w.Body).Decode(&resp)
		sub, err := service.VerifyJWT(resp.AccessToken)
		if err != nil {
			t.Fatalf("VerifyJWT() error = %v", err)
		}
		if sub != "coach-42" {
			t.Errorf("expected sub coach-42, got %q", sub)
		}
	})

	t.Run("InvalidUser", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/auth/dev", strings.NewReader(`{"user_id":"has space"}`))
		w := httptest.NewRecorder()

		handler.HandleDevAuth(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("BadJSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/auth/dev", strings.NewReader(`{`))
		w := httptest.NewRecorder()

		handler.HandleDevAuth(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestHandleDevAuthDisabled(t *testing.T) {
	handler := NewHandlers(NewService(testConfig(config.AuthModeNone, false)))

	req := httptest.NewRequest("POST", "/v1/auth/dev", nil)
	w := httptest.NewRecorder()

	handler.HandleDevAuth(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestMiddlewareWrap(t *testing.T) {
	cfg := testConfig(config.AuthModeDev, true)
	service := NewService(cfg)
	token, err := service.generateJWT("coach_123", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		required   bool
		method     string
		path       string
		header     string
		wantStatus int
		wantCoach  string
	}{
		{"required with token", true, "GET", "/v1/clients", "Bearer " + token, http.StatusOK, "coach_123"},
		{"lowercase scheme", true, "GET", "/v1/meal/plan", "bearer " + token, http.StatusOK, "coach_123"},
		{"required without token", true, "GET", "/v1/clients", "", http.StatusUnauthorized, ""},
		{"required bad token", true, "POST", "/v1/meal/plan/generate", "Bearer invalid_token", http.StatusUnauthorized, ""},
		{"wrong scheme", true, "PUT", "/v1/food/selection", "Basic " + token, http.StatusUnauthorized, ""},
		{"empty bearer", true, "GET", "/v1/meal/today", "Bearer ", http.StatusUnauthorized, ""},
		{"healthz public", true, "GET", "/healthz", "", http.StatusOK, ""},
		{"catalog public", true, "GET", "/v1/food/catalog", "", http.StatusOK, ""},
		{"selection not public", true, "GET", "/v1/food/selection", "", http.StatusUnauthorized, ""},
		{"dev sign-in public with bad token", true, "POST", "/v1/auth/dev", "Bearer invalid", http.StatusOK, ""},
		{"optional without token", false, "GET", "/v1/clients", "", http.StatusOK, ""},
		{"optional with token", false, "GET", "/v1/meal/plan/export", "Bearer " + token, http.StatusOK, "coach_123"},
		{"optional bad token", false, "GET", "/v1/clients", "Bearer invalid", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(config.AuthModeDev, tt.required)
			middleware := NewMiddleware(cfg, NewService(cfg))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			var gotCoach string
			handler := middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCoach, _ = userctx.GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if gotCoach != tt.wantCoach {
				t.Errorf("coach in context = %q, want %q", gotCoach, tt.wantCoach)
			}
			if w.Code == http.StatusUnauthorized {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Error.Code != "unauthorized" {
					t.Errorf("error body = %+v (%v)", resp, err)
				}
			}
		})
	}
}

func TestVerifyJWT(t *testing.T) {
	cfg := testConfig(config.AuthModeDev, true)
	service := NewService(cfg)

	valid, err := service.generateJWT("test_user_123", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := service.generateJWT("test_user_123", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	otherIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test_user_123",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatal(err)
	}
	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test_user_123",
		"iss": cfg.JWTIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		token   string
		wantSub string
		wantErr bool
	}{
		{"valid", valid, "test_user_123", false},
		{"expired", expired, "", true},
		{"wrong issuer", otherIssuer, "", true},
		{"wrong secret", otherSecret, "", true},
		{"garbage", "not.a.token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := service.VerifyJWT(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyJWT() error = %v, wantErr %v", err, tt.wantErr)
			}
			if sub != tt.wantSub {
				t.Errorf("VerifyJWT() = %q, want %q", sub, tt.wantSub)
			}
		})
	}
}
