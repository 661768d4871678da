// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/asset3d/facility-service/internal/types"
)

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string and returns its claims.
	// An invalid, expired or tampered token yields an error.
	VerifyToken(rawToken string) (*Claims, error)
}

type TokenIssuerInterface interface {
	// IssueToken signs a token for the given user.
	IssueToken(u *types.User) (string, error)
}

// UserProviderInterface resolves the acting user behind a verified token.
type UserProviderInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
}

// PrincipalCacheInterface is the in-process cache fronting user lookups
// on the hot authentication path.
type PrincipalCacheInterface interface {
	Get(id string) (*types.User, bool)
	Set(id string, u *types.User)
	Delete(id string)
}
