// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package group

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenantsByType(ctx context.Context, tenantType string) ([]*types.Tenant, error)
	ListTenantsByParent(ctx context.Context, parentID string) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, t *types.Tenant) error
	DeleteTenant(ctx context.Context, id string) error
}

type ServiceInterface interface {
	ListGroups(ctx context.Context) ([]*types.Tenant, error)
	GetGroup(ctx context.Context, id string) (*types.Tenant, error)
	CreateGroup(ctx context.Context, name string, settings map[string]interface{}) (*types.Tenant, error)
	UpdateGroup(ctx context.Context, id string, patch GroupPatch) (*types.Tenant, error)
	DeleteGroup(ctx context.Context, id string) error
	ListCompanies(ctx context.Context, groupID string) ([]*types.Tenant, error)
	CreateCompany(ctx context.Context, groupID, name string, settings map[string]interface{}) (*types.Tenant, error)
}

// GroupPatch carries the PATCH semantics: only non-nil fields are
// applied.
type GroupPatch struct {
	Name     *string
	Settings map[string]interface{}
}
