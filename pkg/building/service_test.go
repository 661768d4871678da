// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package building

import (
	"context"
	"errors"
	"testing"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
)

func newBuildingFixture(t *testing.T) (*Service, *storage.InMemoryStorage, *types.Tenant) {
	t.Helper()

	logger := logging.NewNoopLogger()
	store := storage.NewInMemoryStorage(logger)

	tenant, err := store.CreateTenant(context.Background(), &types.Tenant{Name: "Acme", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	service := NewService(store, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger)
	return service, store, tenant
}

func TestService_SaveAndGetStructure(t *testing.T) {
	service, _, tenant := newBuildingFixture(t)
	ctx := context.Background()

	b, err := service.CreateBuilding(ctx, &types.Building{TenantID: tenant.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	lobbyID := "room-lobby"
	officeID := "room-office"

	structure, err := service.SaveContents(ctx, tenant.ID, b.ID, &Contents{
		Name: "HQ",
		Floors: []*types.Floor{
			{Number: 1, Name: "Ground Floor"},
			{Number: 3, Name: "Roof Terrace"},
		},
		Rooms: []*types.Room{
			{ID: lobbyID, Name: "Lobby", FloorNumber: 1},
			{ID: officeID, Name: "Office", FloorNumber: 2},
		},
		Assets: []*types.Asset{
			{Name: "Desk", RoomID: &officeID, Scale: types.DefaultScale},
			{Name: "Chair", RoomID: &officeID, Scale: types.DefaultScale},
			{Name: "Counter", RoomID: &lobbyID, Scale: types.DefaultScale},
		},
	})
	if err != nil {
		t.Fatalf("failed to save contents: %v", err)
	}

	if len(structure.Floors) != 3 {
		t.Fatalf("expected 3 floors, got %d", len(structure.Floors))
	}

	// Floor 1 is the explicit definition with the lobby.
	if structure.Floors[0].Name != "Ground Floor" || structure.Floors[0].AssetCount != 1 {
		t.Errorf("unexpected ground floor: %+v", structure.Floors[0])
	}
	// Floor 2 is synthesized from the office room.
	if structure.Floors[1].Number != 2 || structure.Floors[1].AssetCount != 2 {
		t.Errorf("unexpected synthesized floor: %+v", structure.Floors[1])
	}
	// Floor 3 is defined but empty.
	if structure.Floors[2].Name != "Roof Terrace" || len(structure.Floors[2].Rooms) != 0 {
		t.Errorf("unexpected empty floor: %+v", structure.Floors[2])
	}

	if len(structure.Assets) != 3 {
		t.Errorf("expected 3 placed assets, got %d", len(structure.Assets))
	}
}

func TestService_GetStructure_CrossTenant(t *testing.T) {
	service, store, tenant := newBuildingFixture(t)
	ctx := context.Background()

	other, err := store.CreateTenant(ctx, &types.Tenant{Name: "Other", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	b, err := service.CreateBuilding(ctx, &types.Building{TenantID: tenant.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	if _, err := service.GetStructure(ctx, other.ID, b.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound across tenants, got %v", err)
	}

	// The admin view (no tenant scope) reaches it.
	if _, err := service.GetStructure(ctx, "", b.ID); err != nil {
		t.Errorf("expected unscoped read to succeed, got %v", err)
	}
}

func TestService_SaveContents_RenamesBuilding(t *testing.T) {
	service, _, tenant := newBuildingFixture(t)
	ctx := context.Background()

	b, err := service.CreateBuilding(ctx, &types.Building{TenantID: tenant.ID, Name: "Old Name"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	structure, err := service.SaveContents(ctx, tenant.ID, b.ID, &Contents{Name: "New Name"})
	if err != nil {
		t.Fatalf("failed to save contents: %v", err)
	}

	if structure.Building.Name != "New Name" {
		t.Errorf("expected renamed building, got %q", structure.Building.Name)
	}
}
