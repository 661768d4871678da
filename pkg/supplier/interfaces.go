// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package supplier

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateSupplier(ctx context.Context, s *types.Supplier) (*types.Supplier, error)
	GetSupplierByID(ctx context.Context, tenantID, id string) (*types.Supplier, error)
	ListSuppliers(ctx context.Context, tenantID string) ([]*types.Supplier, error)
	UpdateSupplier(ctx context.Context, s *types.Supplier) error
	DeleteSupplier(ctx context.Context, tenantID, id string) error
}

type ServiceInterface interface {
	ListSuppliers(ctx context.Context, tenantID string) ([]*types.Supplier, error)
	GetSupplier(ctx context.Context, tenantID, id string) (*types.Supplier, error)
	CreateSupplier(ctx context.Context, s *types.Supplier) (*types.Supplier, error)
	UpdateSupplier(ctx context.Context, tenantID, id string, patch SupplierPatch) (*types.Supplier, error)
	DeleteSupplier(ctx context.Context, tenantID, id string) error
}

type SupplierPatch struct {
	Name         *string
	ContactEmail *string
	Phone        *string
}
