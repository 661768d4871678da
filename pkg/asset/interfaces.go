// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package asset

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateAsset(ctx context.Context, a *types.Asset) (*types.Asset, error)
	GetAssetByID(ctx context.Context, tenantID, id string) (*types.Asset, error)
	ListAssets(ctx context.Context, tenantID string) ([]*types.Asset, error)
	ListAssetsByRoom(ctx context.Context, roomID string) ([]*types.Asset, error)
	UpdateAsset(ctx context.Context, a *types.Asset) error
	DeleteAsset(ctx context.Context, tenantID, id string) error
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error)
}

type ServiceInterface interface {
	ListAssets(ctx context.Context, tenantID string) ([]*types.Asset, error)
	GetAsset(ctx context.Context, tenantID, id string) (*types.Asset, error)
	CreateAsset(ctx context.Context, a *types.Asset, transform *Transform) (*types.Asset, error)
	UpdateAsset(ctx context.Context, tenantID, id string, patch AssetPatch) (*types.Asset, error)
	DeleteAsset(ctx context.Context, tenantID, id string) error
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error)
}

// Transform carries the optional placement of a newly created asset.
// Missing parts fall back to the defaults: zero position and rotation,
// unit scale.
type Transform struct {
	Position *types.Vec3
	Rotation *types.Vec3
	Scale    *types.Vec3
}

type AssetPatch struct {
	Name       *string
	Model      *string
	CategoryID *string
	RoomID     *string
	SupplierID *string
	Position   *types.Vec3
	Rotation   *types.Vec3
	Scale      *types.Vec3
	Price      *float64
	Currency   *string
}
