// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package asset

import (
	"context"
	"testing"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
)

func newAssetFixture(t *testing.T) (*Service, *types.Tenant) {
	t.Helper()

	logger := logging.NewNoopLogger()
	store := storage.NewInMemoryStorage(logger)

	tenant, err := store.CreateTenant(context.Background(), &types.Tenant{Name: "Acme", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	service := NewService(store, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger)
	return service, tenant
}

func TestService_CreateAsset_DefaultTransform(t *testing.T) {
	service, tenant := newAssetFixture(t)

	created, err := service.CreateAsset(context.Background(), &types.Asset{
		TenantID: tenant.ID,
		Name:     "Desk",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zero := types.Vec3{}
	if created.Position != zero {
		t.Errorf("expected zero position, got %+v", created.Position)
	}
	if created.Rotation != zero {
		t.Errorf("expected zero rotation, got %+v", created.Rotation)
	}
	if created.Scale != types.DefaultScale {
		t.Errorf("expected unit scale, got %+v", created.Scale)
	}
}

func TestService_CreateAsset_PartialTransform(t *testing.T) {
	service, tenant := newAssetFixture(t)

	pos := types.Vec3{X: 1.5, Y: 0, Z: -2}
	created, err := service.CreateAsset(context.Background(), &types.Asset{
		TenantID: tenant.ID,
		Name:     "Desk",
	}, &Transform{Position: &pos})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Position != pos {
		t.Errorf("expected position %+v, got %+v", pos, created.Position)
	}
	// Unspecified parts still take the defaults.
	if created.Rotation != (types.Vec3{}) {
		t.Errorf("expected zero rotation, got %+v", created.Rotation)
	}
	if created.Scale != types.DefaultScale {
		t.Errorf("expected unit scale, got %+v", created.Scale)
	}
}

func TestService_CreateAsset_FullTransform(t *testing.T) {
	service, tenant := newAssetFixture(t)

	pos := types.Vec3{X: 1, Y: 2, Z: 3}
	rot := types.Vec3{Y: 90}
	scale := types.Vec3{X: 2, Y: 2, Z: 2}

	created, err := service.CreateAsset(context.Background(), &types.Asset{
		TenantID: tenant.ID,
		Name:     "Desk",
	}, &Transform{Position: &pos, Rotation: &rot, Scale: &scale})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Position != pos || created.Rotation != rot || created.Scale != scale {
		t.Errorf("expected explicit transform to be kept, got %+v %+v %+v", created.Position, created.Rotation, created.Scale)
	}
}

func TestService_UpdateAsset_ClearsReferences(t *testing.T) {
	service, tenant := newAssetFixture(t)
	ctx := context.Background()

	created, err := service.CreateAsset(ctx, &types.Asset{TenantID: tenant.ID, Name: "Desk"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := ""
	updated, err := service.UpdateAsset(ctx, tenant.ID, created.ID, AssetPatch{SupplierID: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.SupplierID != nil {
		t.Errorf("expected supplier reference to be cleared")
	}
}
