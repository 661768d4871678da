// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/authorization"
)

const (
	testJWTSecret  = "router-test-jwt-secret"
	testCSRFSecret = "router-test-csrf-secret"
)

type routerFixture struct {
	handler http.Handler
	token   string
	csrf    string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	logger := logging.NewNoopLogger()
	monitor := monitoring.NewNoopMonitor()
	tracer := tracing.NewNoopTracer()
	store := storage.NewInMemoryStorage(logger)
	ctx := context.Background()

	tenant, err := store.CreateTenant(ctx, &types.Tenant{Name: "Acme", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	user, err := store.CreateUser(ctx, &types.User{
		TenantID: tenant.ID,
		Email:    "user@acme.no",
		Name:     "User",
		Role:     types.RoleUser,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	jwtManager := authentication.NewJWTManager(testJWTSecret, time.Hour)
	token, err := jwtManager.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	authn := authentication.NewMiddleware(jwtManager, store, authentication.NoopPrincipalCache{}, tracer, monitor, logger)
	authz := authorization.NewMiddleware(testCSRFSecret, tracer, monitor, logger)

	public := RegistrarFunc(func(mux chi.Router) {
		mux.Get("/api/open", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	protected := RegistrarFunc(func(mux chi.Router) {
		mux.Get("/api/closed", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mux.Post("/api/closed", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	})

	handler := NewRouter(
		authn,
		authz,
		monitoring.NewMiddleware(monitor, logger),
		tracing.NewMiddleware(monitor, logger),
		[]EndpointRegistrar{public},
		[]EndpointRegistrar{protected},
		logger,
	)

	return &routerFixture{
		handler: handler,
		token:   token,
		csrf:    authorization.CSRFToken(user.ID, testCSRFSecret),
	}
}

func TestRouter_PublicRouteSkipsAuthentication(t *testing.T) {
	f := newRouterFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/api/open", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRouteRequiresBearer(t *testing.T) {
	f := newRouterFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/api/closed", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without a token, got %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/closed", nil)
	r.Header.Set("Authorization", "Bearer "+f.token)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 with a valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MutationsRequireCSRFToken(t *testing.T) {
	f := newRouterFixture(t)

	r := httptest.NewRequest(http.MethodPost, "/api/closed", strings.NewReader("{}"))
	r.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403 without a CSRF token, got %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/closed", strings.NewReader("{}"))
	r.Header.Set("Authorization", "Bearer "+f.token)
	r.Header.Set(authorization.CSRFHeader, f.csrf)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201 with a CSRF token, got %d", rec.Code)
	}
}
