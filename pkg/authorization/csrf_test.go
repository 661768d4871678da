// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
)

const testCSRFSecret = "csrf-test-secret"

func TestCSRFToken_Deterministic(t *testing.T) {
	a := CSRFToken("user-1", testCSRFSecret)
	b := CSRFToken("user-1", testCSRFSecret)
	if a != b {
		t.Errorf("expected stable token for same user and secret")
	}

	if CSRFToken("user-2", testCSRFSecret) == a {
		t.Errorf("expected different tokens for different users")
	}
	if CSRFToken("user-1", "other-secret") == a {
		t.Errorf("expected different tokens for different secrets")
	}
}

func TestVerifyCSRFToken(t *testing.T) {
	token := CSRFToken("user-1", testCSRFSecret)

	if !VerifyCSRFToken(token, "user-1", testCSRFSecret) {
		t.Errorf("expected valid token to verify")
	}
	if VerifyCSRFToken(token, "user-2", testCSRFSecret) {
		t.Errorf("expected token bound to another user to fail")
	}
	if VerifyCSRFToken("", "user-1", testCSRFSecret) {
		t.Errorf("expected empty token to fail")
	}
	if VerifyCSRFToken("not-hex", "user-1", testCSRFSecret) {
		t.Errorf("expected malformed token to fail")
	}
}

func newCSRFTestHandler(t *testing.T) http.Handler {
	t.Helper()

	m := NewMiddleware(testCSRFSecret, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return m.VerifyCSRF()(next)
}

func csrfRequest(method, token string) *http.Request {
	r := httptest.NewRequest(method, "/api/assets", nil)
	if token != "" {
		r.Header.Set(CSRFHeader, token)
	}

	principal := &authentication.Principal{ID: "user-1", Role: types.RoleUser, TenantID: "tenant-1"}
	return r.WithContext(authentication.WithPrincipal(r.Context(), principal))
}

func TestVerifyCSRF_Middleware(t *testing.T) {
	validToken := CSRFToken("user-1", testCSRFSecret)

	testCases := []struct {
		name           string
		method         string
		token          string
		expectedStatus int
	}{
		{"GET passes without token", http.MethodGet, "", http.StatusOK},
		{"POST without token is rejected", http.MethodPost, "", http.StatusForbidden},
		{"POST with valid token passes", http.MethodPost, validToken, http.StatusOK},
		{"PUT with valid token passes", http.MethodPut, validToken, http.StatusOK},
		{"DELETE with wrong token is rejected", http.MethodDelete, "ffff", http.StatusForbidden},
		{"PATCH with another user's token is rejected", http.MethodPatch, CSRFToken("user-2", testCSRFSecret), http.StatusForbidden},
	}

	handler := newCSRFTestHandler(t)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, csrfRequest(tc.method, tc.token))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}
