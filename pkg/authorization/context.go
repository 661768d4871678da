// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authorization

import "context"

// TenantContext is the effective tenant scope of a request, resolved
// from the X-Tenant-Id header or the caller's own tenant.
type TenantContext struct {
	TenantID string
	// Enforced is false only for the admin role, which sees across
	// tenants.
	Enforced bool
}

type contextKey struct{}

var tenantContextKey = contextKey{}

func WithTenantContext(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

func TenantContextFromContext(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(*TenantContext)
	return tc, ok
}

// ScopeTenantID returns the tenant id storage lookups should be scoped
// by: empty when isolation is waived.
func ScopeTenantID(ctx context.Context) string {
	tc, ok := TenantContextFromContext(ctx)
	if !ok || !tc.Enforced {
		return ""
	}
	return tc.TenantID
}
