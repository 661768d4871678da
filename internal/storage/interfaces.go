// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

// StorageInterface is the uniform persistence contract implemented by the
// PostgreSQL backend and the in-memory backend used in mock mode.
//
// Lookups taking a tenantID treat the empty string as "no tenant scope"
// (the admin view). A scoped lookup on a row owned by a different tenant
// reports ErrNotFound, never the row's existence.
type StorageInterface interface {
	// Tenants
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	ListTenantsByType(ctx context.Context, tenantType string) ([]*types.Tenant, error)
	ListTenantsByParent(ctx context.Context, parentID string) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, t *types.Tenant) error
	DeleteTenant(ctx context.Context, id string) error

	// Users
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	ListUsers(ctx context.Context, tenantID string) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User) error
	DeleteUser(ctx context.Context, tenantID, id string) error

	// Suppliers
	CreateSupplier(ctx context.Context, s *types.Supplier) (*types.Supplier, error)
	GetSupplierByID(ctx context.Context, tenantID, id string) (*types.Supplier, error)
	ListSuppliers(ctx context.Context, tenantID string) ([]*types.Supplier, error)
	UpdateSupplier(ctx context.Context, s *types.Supplier) error
	DeleteSupplier(ctx context.Context, tenantID, id string) error

	// Categories
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error)

	// Locations
	CreateLocation(ctx context.Context, l *types.Location) (*types.Location, error)
	GetLocationByID(ctx context.Context, tenantID, id string) (*types.Location, error)
	ListLocations(ctx context.Context, tenantID string) ([]*types.Location, error)
	UpdateLocation(ctx context.Context, l *types.Location) error
	DeleteLocation(ctx context.Context, tenantID, id string) error

	// Buildings and their contents
	CreateBuilding(ctx context.Context, b *types.Building) (*types.Building, error)
	GetBuildingByID(ctx context.Context, tenantID, id string) (*types.Building, error)
	ListBuildings(ctx context.Context, tenantID string) ([]*types.Building, error)
	UpdateBuilding(ctx context.Context, b *types.Building) error
	DeleteBuilding(ctx context.Context, tenantID, id string) error
	ListFloors(ctx context.Context, buildingID string) ([]*types.Floor, error)
	ListRoomsWithCounts(ctx context.Context, buildingID string) ([]*types.RoomWithCount, error)
	ListAssetsByBuilding(ctx context.Context, buildingID string) ([]*types.Asset, error)
	// ReplaceBuildingContents atomically swaps a building's floors, rooms
	// and placed assets: all-or-nothing.
	ReplaceBuildingContents(ctx context.Context, b *types.Building, floors []*types.Floor, rooms []*types.Room, assets []*types.Asset) error

	// Assets
	CreateAsset(ctx context.Context, a *types.Asset) (*types.Asset, error)
	GetAssetByID(ctx context.Context, tenantID, id string) (*types.Asset, error)
	ListAssets(ctx context.Context, tenantID string) ([]*types.Asset, error)
	ListAssetsByRoom(ctx context.Context, roomID string) ([]*types.Asset, error)
	UpdateAsset(ctx context.Context, a *types.Asset) error
	DeleteAsset(ctx context.Context, tenantID, id string) error
}
