// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package building

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

func (s *Service) ListBuildings(ctx context.Context, tenantID string) ([]*types.Building, error) {
	ctx, span := s.tracer.Start(ctx, "building.Service.ListBuildings")
	defer span.End()

	return s.storage.ListBuildings(ctx, tenantID)
}

func (s *Service) GetStructure(ctx context.Context, tenantID, id string) (*Structure, error) {
	ctx, span := s.tracer.Start(ctx, "building.Service.GetStructure")
	defer span.End()

	b, err := s.storage.GetBuildingByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	floors, err := s.storage.ListFloors(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.storage.ListRoomsWithCounts(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	assets, err := s.storage.ListAssetsByBuilding(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return &Structure{
		Building: b,
		Floors:   BuildFloors(floors, rooms),
		Assets:   assets,
	}, nil
}

func (s *Service) CreateBuilding(ctx context.Context, b *types.Building) (*types.Building, error) {
	ctx, span := s.tracer.Start(ctx, "building.Service.CreateBuilding")
	defer span.End()

	return s.storage.CreateBuilding(ctx, b)
}

// SaveContents replaces the whole building in one transaction and reads
// the fresh structure back.
func (s *Service) SaveContents(ctx context.Context, tenantID, id string, contents *Contents) (*Structure, error) {
	ctx, span := s.tracer.Start(ctx, "building.Service.SaveContents")
	defer span.End()

	b, err := s.storage.GetBuildingByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if contents.Name != "" {
		b.Name = contents.Name
	}
	b.LocationID = contents.LocationID

	for _, f := range contents.Floors {
		f.BuildingID = b.ID
	}
	for _, r := range contents.Rooms {
		r.BuildingID = b.ID
		r.TenantID = b.TenantID
	}
	for _, a := range contents.Assets {
		a.TenantID = b.TenantID
	}

	if err := s.storage.ReplaceBuildingContents(ctx, b, contents.Floors, contents.Rooms, contents.Assets); err != nil {
		return nil, err
	}

	return s.GetStructure(ctx, tenantID, id)
}

func (s *Service) DeleteBuilding(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "building.Service.DeleteBuilding")
	defer span.End()

	return s.storage.DeleteBuilding(ctx, tenantID, id)
}
