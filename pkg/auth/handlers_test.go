// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/pkg/web"
)

func newLoginServer(t *testing.T) http.Handler {
	t.Helper()

	service, _ := newLoginFixture(t)
	api := NewAPI(service, logging.NewNoopLogger())

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	return mux
}

func TestLoginEndpoint_Success(t *testing.T) {
	handler := newLoginServer(t)

	body := `{"email":"user@acme.no","password":"demo123"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result LoginResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Token == "" || result.CSRFToken == "" {
		t.Errorf("expected token and CSRF token in response")
	}
	if result.User == nil || result.User.Email != "user@acme.no" {
		t.Errorf("expected user in response, got %+v", result.User)
	}
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	handler := newLoginServer(t)

	body := `{"email":"user@acme.no","password":"wrong"}`
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	var resp web.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "unauthorized" {
		t.Errorf("expected unauthorized error code, got %q", resp.Error)
	}
}

func TestLoginEndpoint_ValidationErrors(t *testing.T) {
	handler := newLoginServer(t)

	testCases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"demo123"}`},
		{"malformed email", `{"email":"nope","password":"demo123"}`},
		{"missing password", `{"email":"user@acme.no"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, r)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var resp web.ValidationResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Errors) == 0 {
				t.Errorf("expected field errors in response")
			}
		})
	}
}

func TestLoginEndpoint_MalformedBody(t *testing.T) {
	handler := newLoginServer(t)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
