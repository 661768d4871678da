// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
)

// ErrInvalidParent signals a hierarchy violation: only companies take a
// parent, and that parent must be a group tenant.
var ErrInvalidParent = errors.New("invalid tenant parent")

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

func (s *Service) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.storage.ListTenants(ctx)
}

func (s *Service) GetTenant(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetTenant")
	defer span.End()

	return s.storage.GetTenantByID(ctx, id)
}

func (s *Service) CreateTenant(ctx context.Context, name, tenantType string, parentID *string, settings map[string]interface{}) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateTenant")
	defer span.End()

	if err := s.checkParent(ctx, tenantType, parentID); err != nil {
		return nil, err
	}

	return s.storage.CreateTenant(ctx, &types.Tenant{
		Name:     name,
		Type:     tenantType,
		ParentID: parentID,
		Settings: settings,
	})
}

func (s *Service) UpdateTenant(ctx context.Context, id string, patch TenantPatch) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateTenant")
	defer span.End()

	t, err := s.storage.GetTenantByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.ClearParent {
		t.ParentID = nil
	} else if patch.ParentID != nil {
		t.ParentID = patch.ParentID
	}
	if patch.Settings != nil {
		t.Settings = patch.Settings
	}

	if err := s.checkParent(ctx, t.Type, t.ParentID); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateTenant(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.DeleteTenant")
	defer span.End()

	return s.storage.DeleteTenant(ctx, id)
}

func (s *Service) checkParent(ctx context.Context, tenantType string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if tenantType != types.TenantTypeCompany {
		return fmt.Errorf("%w: %s tenants take no parent", ErrInvalidParent, tenantType)
	}

	parent, err := s.storage.GetTenantByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("%w: parent not found", ErrInvalidParent)
	}
	if parent.Type != types.TenantTypeGroup {
		return fmt.Errorf("%w: parent must be a group tenant", ErrInvalidParent)
	}

	return nil
}
