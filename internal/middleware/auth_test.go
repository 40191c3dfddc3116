package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestJWTAuth_RoundTrip(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "cat@example.com", "pro")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	var gotUserID uuid.UUID
	var gotPlan string
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotPlan = GetPlan(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotUserID != userID {
		t.Errorf("Expected user id %s in context, got %s", userID, gotUserID)
	}
	if gotPlan != "pro" {
		t.Errorf("Expected plan pro in context, got %q", gotPlan)
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	auth := NewJWTAuth("test-secret")
	other := NewJWTAuth("different-secret")

	foreignToken, err := other.GenerateAccessToken(uuid.New(), "x@example.com", "free")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "Missing authorization header"},
		{"bad format", "Token abc", "Invalid authorization format"},
		{"garbage token", "Bearer not-a-jwt", "Invalid token"},
		{"wrong secret", "Bearer " + foreignToken, "Invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("Expected handler not reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("Expected status 401, got %d", rr.Code)
			}
			var body map[string]interface{}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body["error"] != tc.wantMsg {
				t.Errorf("Expected %q, got %v", tc.wantMsg, body["error"])
			}
		})
	}
}

func TestJWTAuth_OptionalMiddleware(t *testing.T) {
	auth := NewJWTAuth("test-secret")

	var gotUserID uuid.UUID
	handler := auth.OptionalMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
	}))

	// Anonymous requests pass through with no identity.
	req := httptest.NewRequest(http.MethodPost, "/api/generate-video-prompt", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected anonymous request to pass, got %d", rr.Code)
	}
	if gotUserID != uuid.Nil {
		t.Errorf("Expected nil user id for anonymous request, got %s", gotUserID)
	}

	// So do requests with an invalid token.
	req = httptest.NewRequest(http.MethodPost, "/api/generate-video-prompt", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected invalid-token request to degrade to anonymous, got %d", rr.Code)
	}

	// A valid token attaches identity.
	userID := uuid.New()
	token, err := auth.GenerateAccessToken(userID, "cat@example.com", "vip")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/generate-video-prompt", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if gotUserID != userID {
		t.Errorf("Expected user id %s, got %s", userID, gotUserID)
	}
}
