// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(testCSRFSecret, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func principalContext(role, tenantID string) context.Context {
	return authentication.WithPrincipal(context.Background(), &authentication.Principal{
		ID:       "user-1",
		Role:     role,
		TenantID: tenantID,
	})
}

func TestCanAccessTenant(t *testing.T) {
	testCases := []struct {
		name          string
		role          string
		ownTenant     string
		contextTenant string
		target        string
		expected      bool
	}{
		{"admin reaches any tenant", types.RoleAdmin, "t-admin", "", "t-other", true},
		{"group reaches own tenant", types.RoleGroup, "t-group", "", "t-group", true},
		{"group reaches tenant context", types.RoleGroup, "t-group", "t-company", "t-company", true},
		{"group cannot reach unrelated tenant", types.RoleGroup, "t-group", "t-company", "t-other", false},
		{"company reaches own tenant only", types.RoleCompany, "t-company", "", "t-company", true},
		{"company cannot reach sibling", types.RoleCompany, "t-company", "", "t-sibling", false},
		{"user cannot reach other tenant even via context", types.RoleUser, "t-company", "t-other", "t-other", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := principalContext(tc.role, tc.ownTenant)
			if tc.contextTenant != "" {
				ctx = WithTenantContext(ctx, &TenantContext{TenantID: tc.contextTenant, Enforced: true})
			}

			if got := CanAccessTenant(ctx, tc.target); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCanAccessTenant_NoPrincipal(t *testing.T) {
	if CanAccessTenant(context.Background(), "t-any") {
		t.Errorf("expected access denied without principal")
	}
}

func TestResolveTenant(t *testing.T) {
	testCases := []struct {
		name             string
		role             string
		ownTenant        string
		header           string
		expectedTenant   string
		expectedEnforced bool
	}{
		{"defaults to own tenant", types.RoleCompany, "t-company", "", "t-company", true},
		{"header overrides tenant", types.RoleGroup, "t-group", "t-company", "t-company", true},
		{"own tenant in header is allowed", types.RoleUser, "t-company", "t-company", "t-company", true},
		{"admin scope is not enforced", types.RoleAdmin, "t-admin", "", "t-admin", false},
		{"admin header still recorded", types.RoleAdmin, "t-admin", "t-company", "t-company", false},
	}

	m := newTestMiddleware()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var captured *TenantContext
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = TenantContextFromContext(r.Context())
			})

			r := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
			if tc.header != "" {
				r.Header.Set(TenantHeader, tc.header)
			}
			r = r.WithContext(principalContext(tc.role, tc.ownTenant))

			rec := httptest.NewRecorder()
			m.ResolveTenant()(next).ServeHTTP(rec, r)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if captured == nil {
				t.Fatal("expected tenant context to be set")
			}
			if captured.TenantID != tc.expectedTenant {
				t.Errorf("expected tenant %q, got %q", tc.expectedTenant, captured.TenantID)
			}
			if captured.Enforced != tc.expectedEnforced {
				t.Errorf("expected enforced %v, got %v", tc.expectedEnforced, captured.Enforced)
			}
		})
	}
}

func TestResolveTenant_ForeignHeaderForbidden(t *testing.T) {
	m := newTestMiddleware()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected the request to be rejected before the handler")
	})

	for _, role := range []string{types.RoleCompany, types.RoleUser, types.RoleSupplier} {
		t.Run(role, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
			r.Header.Set(TenantHeader, "t-other")
			r = r.WithContext(principalContext(role, "t-own"))

			rec := httptest.NewRecorder()
			m.ResolveTenant()(next).ServeHTTP(rec, r)

			if rec.Code != http.StatusForbidden {
				t.Errorf("expected status 403, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	m := newTestMiddleware()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := m.RequireRoles(types.RoleAdmin, types.RoleGroup)(next)

	testCases := []struct {
		role           string
		expectedStatus int
	}{
		{types.RoleAdmin, http.StatusOK},
		{types.RoleGroup, http.StatusOK},
		{types.RoleCompany, http.StatusForbidden},
		{types.RoleUser, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.role, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
			r = r.WithContext(principalContext(tc.role, "t-1"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}

func TestScopeTenantID(t *testing.T) {
	ctx := WithTenantContext(context.Background(), &TenantContext{TenantID: "t-1", Enforced: true})
	if got := ScopeTenantID(ctx); got != "t-1" {
		t.Errorf("expected scoped tenant t-1, got %q", got)
	}

	ctx = WithTenantContext(context.Background(), &TenantContext{TenantID: "t-1", Enforced: false})
	if got := ScopeTenantID(ctx); got != "" {
		t.Errorf("expected unscoped lookup for admins, got %q", got)
	}

	if got := ScopeTenantID(context.Background()); got != "" {
		t.Errorf("expected empty scope without tenant context, got %q", got)
	}
}
