// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package group

import (
	"context"
	"errors"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
)

// ErrNotAGroup is returned when a company operation names a tenant that
// exists but is not a group.
var ErrNotAGroup = errors.New("tenant is not a group")

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

func (s *Service) ListGroups(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "group.Service.ListGroups")
	defer span.End()

	return s.storage.ListTenantsByType(ctx, types.TenantTypeGroup)
}

func (s *Service) CreateGroup(ctx context.Context, name string, settings map[string]interface{}) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "group.Service.CreateGroup")
	defer span.End()

	return s.storage.CreateTenant(ctx, &types.Tenant{
		Name:     name,
		Type:     types.TenantTypeGroup,
		Settings: settings,
	})
}

func (s *Service) GetGroup(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "group.Service.GetGroup")
	defer span.End()

	return s.requireGroup(ctx, id)
}

func (s *Service) UpdateGroup(ctx context.Context, id string, patch GroupPatch) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "group.Service.UpdateGroup")
	defer span.End()

	g, err := s.requireGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Settings != nil {
		g.Settings = patch.Settings
	}

	if err := s.storage.UpdateTenant(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "group.Service.DeleteGroup")
	defer span.End()

	if _, err := s.requireGroup(ctx, id); err != nil {
		return err
	}

	return s.storage.DeleteTenant(ctx, id)
}

func (s *Service) ListCompanies(ctx context.Context, groupID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "group.Service.ListCompanies")
	defer span.End()

	if _, err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}

	return s.storage.ListTenantsByParent(ctx, groupID)
}

func (s *Service) CreateCompany(ctx context.Context, groupID, name string, settings map[string]interface{}) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "group.Service.CreateCompany")
	defer span.End()

	if _, err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}

	return s.storage.CreateTenant(ctx, &types.Tenant{
		Name:     name,
		Type:     types.TenantTypeCompany,
		ParentID: &groupID,
		Settings: settings,
	})
}

func (s *Service) requireGroup(ctx context.Context, groupID string) (*types.Tenant, error) {
	t, err := s.storage.GetTenantByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if t.Type != types.TenantTypeGroup {
		return nil, ErrNotAGroup
	}
	return t, nil
}
