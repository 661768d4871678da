// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/authorization"
)

type tenantListFixture struct {
	handler http.Handler

	admin   *types.Tenant
	group   *types.Tenant
	company *types.Tenant
	other   *types.Tenant
}

func newTenantListFixture(t *testing.T) *tenantListFixture {
	t.Helper()

	logger := logging.NewNoopLogger()
	store := storage.NewInMemoryStorage(logger)
	ctx := context.Background()

	mustCreate := func(tn *types.Tenant) *types.Tenant {
		created, err := store.CreateTenant(ctx, tn)
		if err != nil {
			t.Fatalf("failed to create tenant: %v", err)
		}
		return created
	}

	f := &tenantListFixture{}
	f.admin = mustCreate(&types.Tenant{Name: "Root", Type: types.TenantTypeAdmin})
	f.group = mustCreate(&types.Tenant{Name: "Group", Type: types.TenantTypeGroup})
	f.company = mustCreate(&types.Tenant{Name: "Company", Type: types.TenantTypeCompany, ParentID: &f.group.ID})
	f.other = mustCreate(&types.Tenant{Name: "Other", Type: types.TenantTypeCompany})

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	service := NewService(store, tracer, monitor, logger)
	authz := authorization.NewMiddleware("test-csrf-secret", tracer, monitor, logger)
	api := NewAPI(service, authz, logger)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	f.handler = mux
	return f
}

// asCaller injects the principal and tenant scope the middleware chain
// would have resolved for a request.
func asCaller(r *http.Request, role, tenantID string) *http.Request {
	ctx := authentication.WithPrincipal(r.Context(), &authentication.Principal{
		ID:       "caller-id",
		Role:     role,
		TenantID: tenantID,
	})
	ctx = authorization.WithTenantContext(ctx, &authorization.TenantContext{
		TenantID: tenantID,
		Enforced: role != types.RoleAdmin,
	})
	return r.WithContext(ctx)
}

func listTenantIDs(t *testing.T, handler http.Handler, role, tenantID string) map[string]bool {
	t.Helper()

	r := asCaller(httptest.NewRequest(http.MethodGet, "/api/tenants", nil), role, tenantID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var tenants []*types.Tenant
	if err := json.NewDecoder(rec.Body).Decode(&tenants); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	ids := make(map[string]bool, len(tenants))
	for _, tn := range tenants {
		ids[tn.ID] = true
	}
	return ids
}

func TestListTenants_AdminSeesAll(t *testing.T) {
	f := newTenantListFixture(t)

	ids := listTenantIDs(t, f.handler, types.RoleAdmin, f.admin.ID)
	if len(ids) != 4 {
		t.Errorf("expected all 4 tenants, got %d", len(ids))
	}
}

func TestListTenants_UserSeesOwnTenantOnly(t *testing.T) {
	f := newTenantListFixture(t)

	ids := listTenantIDs(t, f.handler, types.RoleUser, f.company.ID)
	if len(ids) != 1 || !ids[f.company.ID] {
		t.Errorf("expected only the caller's tenant, got %v", ids)
	}
}

func TestListTenants_GroupSeesItselfAndChildren(t *testing.T) {
	f := newTenantListFixture(t)

	ids := listTenantIDs(t, f.handler, types.RoleGroup, f.group.ID)
	if len(ids) != 2 || !ids[f.group.ID] || !ids[f.company.ID] {
		t.Errorf("expected the group and its company, got %v", ids)
	}
	if ids[f.other.ID] {
		t.Errorf("expected the unrelated company to be hidden")
	}
}

func TestGetTenant_CrossTenantReads404(t *testing.T) {
	f := newTenantListFixture(t)

	r := asCaller(httptest.NewRequest(http.MethodGet, "/api/tenants/"+f.other.ID, nil), types.RoleUser, f.company.ID)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for a foreign tenant, got %d", rec.Code)
	}

	// The caller's own tenant resolves.
	r = asCaller(httptest.NewRequest(http.MethodGet, "/api/tenants/"+f.company.ID, nil), types.RoleUser, f.company.ID)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for the caller's tenant, got %d", rec.Code)
	}
}
