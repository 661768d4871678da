// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package building

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateBuilding(ctx context.Context, b *types.Building) (*types.Building, error)
	GetBuildingByID(ctx context.Context, tenantID, id string) (*types.Building, error)
	ListBuildings(ctx context.Context, tenantID string) ([]*types.Building, error)
	UpdateBuilding(ctx context.Context, b *types.Building) error
	DeleteBuilding(ctx context.Context, tenantID, id string) error
	ListFloors(ctx context.Context, buildingID string) ([]*types.Floor, error)
	ListRoomsWithCounts(ctx context.Context, buildingID string) ([]*types.RoomWithCount, error)
	ListAssetsByBuilding(ctx context.Context, buildingID string) ([]*types.Asset, error)
	ReplaceBuildingContents(ctx context.Context, b *types.Building, floors []*types.Floor, rooms []*types.Room, assets []*types.Asset) error
}

type ServiceInterface interface {
	ListBuildings(ctx context.Context, tenantID string) ([]*types.Building, error)
	GetStructure(ctx context.Context, tenantID, id string) (*Structure, error)
	CreateBuilding(ctx context.Context, b *types.Building) (*types.Building, error)
	SaveContents(ctx context.Context, tenantID, id string, contents *Contents) (*Structure, error)
	DeleteBuilding(ctx context.Context, tenantID, id string) error
}

// Structure is the derived read model of one building: its floors in
// order, each holding its rooms and summed asset count, plus the assets
// placed in the building's rooms.
type Structure struct {
	Building *types.Building `json:"building"`
	Floors   []*FloorGroup   `json:"floors"`
	Assets   []*types.Asset  `json:"assets"`
}

// Contents is the full replacement payload for a building save: the new
// floors, rooms and placed assets, applied atomically.
type Contents struct {
	Name       string
	LocationID *string
	Floors     []*types.Floor
	Rooms      []*types.Room
	Assets     []*types.Asset
}
