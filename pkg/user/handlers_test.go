// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

type userHandlerFixture struct {
	handler http.Handler
	store   *storage.InMemoryStorage
	tenant  *types.Tenant
}

func newUserHandlerFixture(t *testing.T) *userHandlerFixture {
	t.Helper()

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	store := storage.NewInMemoryStorage(logger)

	tenant, err := store.CreateTenant(context.Background(), &types.Tenant{Name: "Acme", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	service := NewService(store, authentication.NoopPrincipalCache{}, tracer, monitor, logger)
	authz := authorization.NewMiddleware("user-handler-test-secret", tracer, monitor, logger)
	api := NewAPI(service, authz, logger)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	return &userHandlerFixture{handler: mux, store: store, tenant: tenant}
}

// asManager injects the principal and tenant scope the middleware chain
// would have resolved for an authenticated caller.
func asManager(r *http.Request, id, role, tenantID string) *http.Request {
	ctx := authentication.WithPrincipal(r.Context(), &authentication.Principal{
		ID:       id,
		Role:     role,
		TenantID: tenantID,
	})
	ctx = authorization.WithTenantContext(ctx, &authorization.TenantContext{
		TenantID: tenantID,
		Enforced: role != types.RoleAdmin,
	})
	return r.WithContext(ctx)
}

func (f *userHandlerFixture) createUser(t *testing.T, callerRole, targetRole string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"email":"new-` + targetRole + `@acme.no","password":"password-1","name":"New","role":"` + targetRole + `"}`
	r := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	r = asManager(r, "caller-id", callerRole, f.tenant.ID)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)
	return rec
}

func TestCreateUser_RoleGrantsByCaller(t *testing.T) {
	testCases := []struct {
		name           string
		callerRole     string
		targetRole     string
		expectedStatus int
	}{
		{"company cannot mint admin", types.RoleCompany, types.RoleAdmin, http.StatusForbidden},
		{"company cannot mint group", types.RoleCompany, types.RoleGroup, http.StatusForbidden},
		{"group cannot mint admin", types.RoleGroup, types.RoleAdmin, http.StatusForbidden},
		{"group cannot mint group", types.RoleGroup, types.RoleGroup, http.StatusForbidden},
		{"company creates user", types.RoleCompany, types.RoleUser, http.StatusCreated},
		{"company creates peer manager", types.RoleCompany, types.RoleCompany, http.StatusCreated},
		{"group creates company manager", types.RoleGroup, types.RoleCompany, http.StatusCreated},
		{"admin creates admin", types.RoleAdmin, types.RoleAdmin, http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newUserHandlerFixture(t)

			rec := f.createUser(t, tc.callerRole, tc.targetRole)
			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, rec.Code, rec.Body.String())
			}

			if rec.Code == http.StatusForbidden {
				// The rejected account must not exist.
				if _, err := f.store.GetUserByEmail(context.Background(), "new-"+tc.targetRole+"@acme.no"); err == nil {
					t.Errorf("expected the rejected user to not be persisted")
				}
			}
		})
	}
}

func TestUpdateUser_CannotPromoteToAdmin(t *testing.T) {
	f := newUserHandlerFixture(t)

	target, err := f.store.CreateUser(context.Background(), &types.User{
		TenantID: f.tenant.ID,
		Email:    "member@acme.no",
		Name:     "Member",
		Role:     types.RoleUser,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	r := httptest.NewRequest(http.MethodPatch, "/api/users/"+target.ID, strings.NewReader(`{"role":"admin"}`))
	r = asManager(r, "caller-id", types.RoleCompany, f.tenant.ID)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", rec.Code, rec.Body.String())
	}

	kept, err := f.store.GetUserByID(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("failed to re-read user: %v", err)
	}
	if kept.Role != types.RoleUser {
		t.Errorf("expected role to stay %q, got %q", types.RoleUser, kept.Role)
	}
}

func TestUpdateUser_CannotTouchHigherRoleAccount(t *testing.T) {
	f := newUserHandlerFixture(t)

	admin, err := f.store.CreateUser(context.Background(), &types.User{
		TenantID: f.tenant.ID,
		Email:    "root@acme.no",
		Name:     "Root",
		Role:     types.RoleAdmin,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	r := httptest.NewRequest(http.MethodPatch, "/api/users/"+admin.ID, strings.NewReader(`{"active":false}`))
	r = asManager(r, "caller-id", types.RoleCompany, f.tenant.ID)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403 on patch, got %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodDelete, "/api/users/"+admin.ID, nil)
	r = asManager(r, "caller-id", types.RoleCompany, f.tenant.ID)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403 on delete, got %d", rec.Code)
	}

	if _, err := f.store.GetUserByID(context.Background(), admin.ID); err != nil {
		t.Errorf("expected the admin account to survive: %v", err)
	}
}

func TestUpdateUser_SelfEditAllowed(t *testing.T) {
	f := newUserHandlerFixture(t)

	manager, err := f.store.CreateUser(context.Background(), &types.User{
		TenantID: f.tenant.ID,
		Email:    "manager@acme.no",
		Name:     "Manager",
		Role:     types.RoleGroup,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	r := httptest.NewRequest(http.MethodPatch, "/api/users/"+manager.ID, strings.NewReader(`{"name":"Renamed"}`))
	r = asManager(r, manager.ID, types.RoleGroup, f.tenant.ID)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated types.User
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected renamed account, got %q", updated.Name)
	}

	// Self-promotion is still rejected.
	r = httptest.NewRequest(http.MethodPatch, "/api/users/"+manager.ID, strings.NewReader(`{"role":"admin"}`))
	r = asManager(r, manager.ID, types.RoleGroup, f.tenant.ID)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403 on self-promotion, got %d", rec.Code)
	}
}
