// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListUsers(ctx context.Context, tenantID string) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User) error
	DeleteUser(ctx context.Context, tenantID, id string) error
}

type ServiceInterface interface {
	ListUsers(ctx context.Context, tenantID string) ([]*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	CreateUser(ctx context.Context, u *types.User, password string) (*types.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*types.User, error)
	DeleteUser(ctx context.Context, tenantID, id string) error
}

// UserPatch applies only its non-nil fields. A non-nil Password is
// re-hashed before storage.
type UserPatch struct {
	Name        *string
	Email       *string
	Role        *string
	Active      *bool
	Password    *string
	Permissions []string
}
