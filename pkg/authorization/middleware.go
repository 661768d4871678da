// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"net/http"
	"slices"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/web"
)

// TenantHeader selects the effective tenant context for a request.
const TenantHeader = "X-Tenant-Id"

// CSRFHeader carries the anti-forgery token on mutating requests.
const CSRFHeader = "X-CSRF-Token"

var mutatingMethods = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

type Middleware struct {
	csrfSecret string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ResolveTenant attaches the effective tenant context: the X-Tenant-Id
// header when present, otherwise the caller's own tenant. Isolation is
// waived for admins only. Admins and groups may select a tenant other
// than their own; every other role is rejected when the header names a
// foreign tenant.
func (m *Middleware) ResolveTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authorization.Middleware.ResolveTenant")
			defer span.End()

			principal, ok := authentication.PrincipalFromContext(ctx)
			if !ok {
				web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
				return
			}

			tc := &TenantContext{
				TenantID: principal.TenantID,
				Enforced: principal.Role != types.RoleAdmin,
			}
			if header := r.Header.Get(TenantHeader); header != "" {
				switch principal.Role {
				case types.RoleAdmin, types.RoleGroup:
				default:
					if header != principal.TenantID {
						m.logger.Security().AccessDenied(principal.ID, r.URL.Path, "foreign tenant selected")
						web.WriteError(w, http.StatusForbidden, "forbidden", "cannot act on another tenant")
						return
					}
				}
				tc.TenantID = header
			}

			next.ServeHTTP(w, r.WithContext(WithTenantContext(ctx, tc)))
		})
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func (m *Middleware) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authorization.Middleware.RequireRoles")
			defer span.End()

			principal, ok := authentication.PrincipalFromContext(ctx)
			if !ok {
				web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
				return
			}

			if !slices.Contains(roles, principal.Role) {
				m.logger.Security().AccessDenied(principal.ID, r.URL.Path, "role not allowed")
				web.WriteError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VerifyCSRF guards state-changing verbs: the X-CSRF-Token header must
// match the token derived from the authenticated user, whatever the
// caller's role.
func (m *Middleware) VerifyCSRF() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authorization.Middleware.VerifyCSRF")
			defer span.End()

			if !slices.Contains(mutatingMethods, r.Method) {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			principal, ok := authentication.PrincipalFromContext(ctx)
			if !ok {
				web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
				return
			}

			if !VerifyCSRFToken(r.Header.Get(CSRFHeader), principal.ID, m.csrfSecret) {
				m.logger.Security().CSRFRejected(principal.ID, r.URL.Path)
				web.WriteError(w, http.StatusForbidden, "forbidden", "missing or invalid CSRF token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CanAccessTenant applies the tenant access rule: admins bypass, group
// callers may reach their own tenant or the resolved tenant context,
// every other role needs an exact match.
func CanAccessTenant(ctx context.Context, targetTenantID string) bool {
	principal, ok := authentication.PrincipalFromContext(ctx)
	if !ok {
		return false
	}

	switch principal.Role {
	case types.RoleAdmin:
		return true
	case types.RoleGroup:
		if targetTenantID == principal.TenantID {
			return true
		}
		if tc, ok := TenantContextFromContext(ctx); ok && targetTenantID == tc.TenantID {
			return true
		}
		return false
	default:
		return targetTenantID == principal.TenantID
	}
}

func NewMiddleware(csrfSecret string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		csrfSecret: csrfSecret,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
