// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type StorageInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type ServiceInterface interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
