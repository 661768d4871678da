// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"context"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	cache   authentication.PrincipalCacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	cache authentication.PrincipalCacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		cache:   cache,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) ListUsers(ctx context.Context, tenantID string) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.ListUsers")
	defer span.End()

	return s.storage.ListUsers(ctx, tenantID)
}

func (s *Service) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.GetUser")
	defer span.End()

	return s.storage.GetUserByID(ctx, id)
}

func (s *Service) CreateUser(ctx context.Context, u *types.User, password string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.CreateUser")
	defer span.End()

	hash, err := authentication.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	return s.storage.CreateUser(ctx, u)
}

func (s *Service) UpdateUser(ctx context.Context, id string, patch UserPatch) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Service.UpdateUser")
	defer span.End()

	u, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}
	if patch.Permissions != nil {
		u.Permissions = patch.Permissions
	}
	if patch.Password != nil {
		hash, err := authentication.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.storage.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	// Drop any cached principal so role and active changes bite on the
	// next request.
	s.cache.Delete(u.ID)

	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "user.Service.DeleteUser")
	defer span.End()

	if err := s.storage.DeleteUser(ctx, tenantID, id); err != nil {
		return err
	}

	s.cache.Delete(id)

	return nil
}
