// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, t *types.Tenant) error
	DeleteTenant(ctx context.Context, id string) error
}

type ServiceInterface interface {
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	GetTenant(ctx context.Context, id string) (*types.Tenant, error)
	CreateTenant(ctx context.Context, name, tenantType string, parentID *string, settings map[string]interface{}) (*types.Tenant, error)
	UpdateTenant(ctx context.Context, id string, patch TenantPatch) (*types.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

// TenantPatch carries the PATCH semantics: only non-nil fields are
// applied.
type TenantPatch struct {
	Name     *string
	ParentID *string
	// ClearParent detaches a company from its group.
	ClearParent bool
	Settings    map[string]interface{}
}
