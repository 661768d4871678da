// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/asset3d/facility-service/internal/types"
)

var _ PrincipalCacheInterface = (*PrincipalCache)(nil)

// PrincipalCache keeps recently resolved users in process so the
// authentication middleware does not hit storage on every request. The
// TTL bounds how long a deactivation can go unnoticed.
type PrincipalCache struct {
	cache *ristretto.Cache[string, *types.User]
	ttl   time.Duration
}

func NewPrincipalCache(ttl time.Duration) (*PrincipalCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *types.User]{
		NumCounters: 10_000, // ~10x expected concurrent users
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &PrincipalCache{cache: cache, ttl: ttl}, nil
}

func (c *PrincipalCache) Get(id string) (*types.User, bool) {
	return c.cache.Get(id)
}

func (c *PrincipalCache) Set(id string, u *types.User) {
	c.cache.SetWithTTL(id, u, 1, c.ttl)
}

func (c *PrincipalCache) Delete(id string) {
	c.cache.Del(id)
}

func (c *PrincipalCache) Close() {
	c.cache.Close()
}

var _ PrincipalCacheInterface = (*NoopPrincipalCache)(nil)

// NoopPrincipalCache disables caching; every request reads storage.
type NoopPrincipalCache struct{}

func (NoopPrincipalCache) Get(string) (*types.User, bool) { return nil, false }
func (NoopPrincipalCache) Set(string, *types.User)        {}
func (NoopPrincipalCache) Delete(string)                  {}
