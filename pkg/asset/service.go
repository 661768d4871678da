// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package asset

import (
	"context"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) ListAssets(ctx context.Context, tenantID string) ([]*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "asset.Service.ListAssets")
	defer span.End()

	return s.storage.ListAssets(ctx, tenantID)
}

func (s *Service) GetAsset(ctx context.Context, tenantID, id string) (*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "asset.Service.GetAsset")
	defer span.End()

	return s.storage.GetAssetByID(ctx, tenantID, id)
}

func (s *Service) CreateAsset(ctx context.Context, a *types.Asset, transform *Transform) (*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "asset.Service.CreateAsset")
	defer span.End()

	a.Position = types.Vec3{}
	a.Rotation = types.Vec3{}
	a.Scale = types.DefaultScale
	if transform != nil {
		if transform.Position != nil {
			a.Position = *transform.Position
		}
		if transform.Rotation != nil {
			a.Rotation = *transform.Rotation
		}
		if transform.Scale != nil {
			a.Scale = *transform.Scale
		}
	}

	return s.storage.CreateAsset(ctx, a)
}

func (s *Service) UpdateAsset(ctx context.Context, tenantID, id string, patch AssetPatch) (*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "asset.Service.UpdateAsset")
	defer span.End()

	a, err := s.storage.GetAssetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Model != nil {
		a.Model = *patch.Model
	}
	if patch.CategoryID != nil {
		a.CategoryID = nilIfEmpty(patch.CategoryID)
	}
	if patch.RoomID != nil {
		a.RoomID = nilIfEmpty(patch.RoomID)
	}
	if patch.SupplierID != nil {
		a.SupplierID = nilIfEmpty(patch.SupplierID)
	}
	if patch.Position != nil {
		a.Position = *patch.Position
	}
	if patch.Rotation != nil {
		a.Rotation = *patch.Rotation
	}
	if patch.Scale != nil {
		a.Scale = *patch.Scale
	}
	if patch.Price != nil {
		a.Price = *patch.Price
	}
	if patch.Currency != nil {
		a.Currency = *patch.Currency
	}

	if err := s.storage.UpdateAsset(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) DeleteAsset(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "asset.Service.DeleteAsset")
	defer span.End()

	return s.storage.DeleteAsset(ctx, tenantID, id)
}

func (s *Service) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "asset.Service.CreateCategory")
	defer span.End()

	return s.storage.CreateCategory(ctx, c)
}

func (s *Service) ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "asset.Service.ListCategories")
	defer span.End()

	return s.storage.ListCategories(ctx, tenantID)
}

// nilIfEmpty turns an explicit empty id into a cleared reference.
func nilIfEmpty(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
