// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package supplier

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

func (s *Service) ListSuppliers(ctx context.Context, tenantID string) ([]*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "supplier.Service.ListSuppliers")
	defer span.End()

	return s.storage.ListSuppliers(ctx, tenantID)
}

func (s *Service) GetSupplier(ctx context.Context, tenantID, id string) (*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "supplier.Service.GetSupplier")
	defer span.End()

	return s.storage.GetSupplierByID(ctx, tenantID, id)
}

func (s *Service) CreateSupplier(ctx context.Context, sup *types.Supplier) (*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "supplier.Service.CreateSupplier")
	defer span.End()

	return s.storage.CreateSupplier(ctx, sup)
}

func (s *Service) UpdateSupplier(ctx context.Context, tenantID, id string, patch SupplierPatch) (*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "supplier.Service.UpdateSupplier")
	defer span.End()

	sup, err := s.storage.GetSupplierByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		sup.Name = *patch.Name
	}
	if patch.ContactEmail != nil {
		sup.ContactEmail = *patch.ContactEmail
	}
	if patch.Phone != nil {
		sup.Phone = *patch.Phone
	}

	if err := s.storage.UpdateSupplier(ctx, sup); err != nil {
		return nil, err
	}

	return sup, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "supplier.Service.DeleteSupplier")
	defer span.End()

	return s.storage.DeleteSupplier(ctx, tenantID, id)
}
