// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package location

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

func (s *Service) ListLocations(ctx context.Context, tenantID string) ([]*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "location.Service.ListLocations")
	defer span.End()

	return s.storage.ListLocations(ctx, tenantID)
}

func (s *Service) GetLocation(ctx context.Context, tenantID, id string) (*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "location.Service.GetLocation")
	defer span.End()

	return s.storage.GetLocationByID(ctx, tenantID, id)
}

func (s *Service) CreateLocation(ctx context.Context, l *types.Location) (*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "location.Service.CreateLocation")
	defer span.End()

	return s.storage.CreateLocation(ctx, l)
}

func (s *Service) UpdateLocation(ctx context.Context, tenantID, id string, patch LocationPatch) (*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "location.Service.UpdateLocation")
	defer span.End()

	l, err := s.storage.GetLocationByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Address != nil {
		l.Address = *patch.Address
	}
	if patch.City != nil {
		l.City = *patch.City
	}
	if patch.Country != nil {
		l.Country = *patch.Country
	}

	if err := s.storage.UpdateLocation(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) DeleteLocation(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "location.Service.DeleteLocation")
	defer span.End()

	return s.storage.DeleteLocation(ctx, tenantID, id)
}
