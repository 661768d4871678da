// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package location

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateLocation(ctx context.Context, l *types.Location) (*types.Location, error)
	GetLocationByID(ctx context.Context, tenantID, id string) (*types.Location, error)
	ListLocations(ctx context.Context, tenantID string) ([]*types.Location, error)
	UpdateLocation(ctx context.Context, l *types.Location) error
	DeleteLocation(ctx context.Context, tenantID, id string) error
}

type ServiceInterface interface {
	ListLocations(ctx context.Context, tenantID string) ([]*types.Location, error)
	GetLocation(ctx context.Context, tenantID, id string) (*types.Location, error)
	CreateLocation(ctx context.Context, l *types.Location) (*types.Location, error)
	UpdateLocation(ctx context.Context, tenantID, id string, patch LocationPatch) (*types.Location, error)
	DeleteLocation(ctx context.Context, tenantID, id string) error
}

type LocationPatch struct {
	Name    *string
	Address *string
	City    *string
	Country *string
}
