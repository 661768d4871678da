// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/types"
)

func newTestStore(t *testing.T) (*InMemoryStorage, *types.Tenant, *types.Tenant) {
	t.Helper()

	s := NewInMemoryStorage(logging.NewNoopLogger())
	ctx := context.Background()

	a, err := s.CreateTenant(ctx, &types.Tenant{Name: "Tenant A", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	b, err := s.CreateTenant(ctx, &types.Tenant{Name: "Tenant B", Type: types.TenantTypeCompany})
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	return s, a, b
}

func TestInMemory_TenantScoping(t *testing.T) {
	s, tenantA, tenantB := newTestStore(t)
	ctx := context.Background()

	sup, err := s.CreateSupplier(ctx, &types.Supplier{TenantID: tenantA.ID, Name: "Alpha Supplies"})
	if err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	// Scoped lookup from the owning tenant succeeds.
	if _, err := s.GetSupplierByID(ctx, tenantA.ID, sup.ID); err != nil {
		t.Errorf("expected owner lookup to succeed, got %v", err)
	}

	// A different tenant sees not-found, not a hint of existence.
	if _, err := s.GetSupplierByID(ctx, tenantB.ID, sup.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound across tenants, got %v", err)
	}

	// The unscoped admin view reaches everything.
	if _, err := s.GetSupplierByID(ctx, "", sup.ID); err != nil {
		t.Errorf("expected unscoped lookup to succeed, got %v", err)
	}

	listA, _ := s.ListSuppliers(ctx, tenantA.ID)
	listB, _ := s.ListSuppliers(ctx, tenantB.ID)
	if len(listA) != 1 || len(listB) != 0 {
		t.Errorf("expected scoped lists 1/0, got %d/%d", len(listA), len(listB))
	}
}

func TestInMemory_DuplicateEmail(t *testing.T) {
	s, tenantA, tenantB := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, &types.User{TenantID: tenantA.ID, Email: "a@x.no", Name: "A", Role: types.RoleUser, Active: true}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// Email uniqueness is global, not per tenant.
	if _, err := s.CreateUser(ctx, &types.User{TenantID: tenantB.ID, Email: "a@x.no", Name: "B", Role: types.RoleUser, Active: true}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestInMemory_DeleteTenantCascades(t *testing.T) {
	s, tenantA, _ := newTestStore(t)
	ctx := context.Background()

	group, err := s.CreateTenant(ctx, &types.Tenant{Name: "Group", Type: types.TenantTypeGroup})
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	company, err := s.CreateTenant(ctx, &types.Tenant{Name: "Child", Type: types.TenantTypeCompany, ParentID: &group.ID})
	if err != nil {
		t.Fatalf("failed to create company: %v", err)
	}

	if _, err := s.CreateUser(ctx, &types.User{TenantID: tenantA.ID, Email: "u@x.no", Name: "U", Role: types.RoleUser, Active: true}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if err := s.DeleteTenant(ctx, tenantA.ID); err != nil {
		t.Fatalf("failed to delete tenant: %v", err)
	}

	if _, err := s.GetUserByEmail(ctx, "u@x.no"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected user to be cascaded, got %v", err)
	}

	// Deleting the group detaches its companies instead of deleting them.
	if err := s.DeleteTenant(ctx, group.ID); err != nil {
		t.Fatalf("failed to delete group: %v", err)
	}
	detached, err := s.GetTenantByID(ctx, company.ID)
	if err != nil {
		t.Fatalf("expected company to survive group deletion, got %v", err)
	}
	if detached.ParentID != nil {
		t.Errorf("expected company parent to be cleared")
	}
}

func TestInMemory_DeleteBuildingCascades(t *testing.T) {
	s, tenantA, _ := newTestStore(t)
	ctx := context.Background()

	building, err := s.CreateBuilding(ctx, &types.Building{TenantID: tenantA.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	roomID := "room-1"
	floors := []*types.Floor{{Number: 1, Name: "Ground"}}
	rooms := []*types.Room{{ID: roomID, Name: "Lobby", FloorNumber: 1}}
	assets := []*types.Asset{{Name: "Desk", RoomID: &roomID, Scale: types.DefaultScale}}

	if err := s.ReplaceBuildingContents(ctx, building, floors, rooms, assets); err != nil {
		t.Fatalf("failed to replace contents: %v", err)
	}

	placed, err := s.ListAssetsByBuilding(ctx, building.ID)
	if err != nil || len(placed) != 1 {
		t.Fatalf("expected 1 placed asset, got %d (%v)", len(placed), err)
	}

	if err := s.DeleteBuilding(ctx, tenantA.ID, building.ID); err != nil {
		t.Fatalf("failed to delete building: %v", err)
	}

	if _, err := s.GetAssetByID(ctx, "", placed[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected placed asset to be cascaded, got %v", err)
	}
	remaining, _ := s.ListRoomsWithCounts(ctx, building.ID)
	if len(remaining) != 0 {
		t.Errorf("expected no rooms after delete, got %d", len(remaining))
	}
}

func TestInMemory_ReplaceBuildingContents_AllOrNothing(t *testing.T) {
	s, tenantA, _ := newTestStore(t)
	ctx := context.Background()

	building, err := s.CreateBuilding(ctx, &types.Building{TenantID: tenantA.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	roomID := "room-1"
	if err := s.ReplaceBuildingContents(ctx, building,
		[]*types.Floor{{Number: 1, Name: "Ground"}},
		[]*types.Room{{ID: roomID, Name: "Lobby", FloorNumber: 1}},
		[]*types.Asset{{Name: "Desk", RoomID: &roomID, Scale: types.DefaultScale}},
	); err != nil {
		t.Fatalf("failed to replace contents: %v", err)
	}

	// A payload referencing a room that is not part of the save must fail
	// and leave the previous state intact.
	ghost := "no-such-room"
	err = s.ReplaceBuildingContents(ctx, building,
		nil,
		[]*types.Room{{Name: "New Lobby", FloorNumber: 1}},
		[]*types.Asset{{Name: "Chair", RoomID: &ghost, Scale: types.DefaultScale}},
	)
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}

	rooms, _ := s.ListRoomsWithCounts(ctx, building.ID)
	if len(rooms) != 1 || rooms[0].Name != "Lobby" {
		t.Errorf("expected original room to survive the failed save, got %+v", rooms)
	}
	assets, _ := s.ListAssetsByBuilding(ctx, building.ID)
	if len(assets) != 1 || assets[0].Name != "Desk" {
		t.Errorf("expected original asset to survive the failed save, got %+v", assets)
	}
}

func TestInMemory_ReplaceBuildingContents_RejectsForeignRoom(t *testing.T) {
	s, tenantA, tenantB := newTestStore(t)
	ctx := context.Background()

	// A real room in another tenant's building.
	other, err := s.CreateBuilding(ctx, &types.Building{TenantID: tenantB.ID, Name: "Their HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}
	foreignRoom := "their-room"
	if err := s.ReplaceBuildingContents(ctx, other,
		nil,
		[]*types.Room{{ID: foreignRoom, Name: "Their Lobby", FloorNumber: 1}},
		nil,
	); err != nil {
		t.Fatalf("failed to set up foreign building: %v", err)
	}

	building, err := s.CreateBuilding(ctx, &types.Building{TenantID: tenantA.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	// The room id exists, but it belongs to another building. Placements
	// must only reference rooms carried in the same save.
	err = s.ReplaceBuildingContents(ctx, building,
		nil,
		[]*types.Room{{Name: "Lobby", FloorNumber: 1}},
		[]*types.Asset{{Name: "Desk", RoomID: &foreignRoom, Scale: types.DefaultScale}},
	)
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}

	// The foreign building is untouched.
	theirAssets, _ := s.ListAssetsByBuilding(ctx, other.ID)
	if len(theirAssets) != 0 {
		t.Errorf("expected no assets in the foreign building, got %d", len(theirAssets))
	}
}

func TestInMemory_ReplaceBuildingContents_ReplacesState(t *testing.T) {
	s, tenantA, _ := newTestStore(t)
	ctx := context.Background()

	building, err := s.CreateBuilding(ctx, &types.Building{TenantID: tenantA.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	oldRoom := "room-old"
	if err := s.ReplaceBuildingContents(ctx, building,
		nil,
		[]*types.Room{{ID: oldRoom, Name: "Old", FloorNumber: 1}},
		[]*types.Asset{{Name: "Old Desk", RoomID: &oldRoom, Scale: types.DefaultScale}},
	); err != nil {
		t.Fatalf("failed initial save: %v", err)
	}

	newRoom := "room-new"
	building.Name = "HQ Renamed"
	if err := s.ReplaceBuildingContents(ctx, building,
		[]*types.Floor{{Number: 2, Name: "Second"}},
		[]*types.Room{{ID: newRoom, Name: "New", FloorNumber: 2}},
		[]*types.Asset{{Name: "New Desk", RoomID: &newRoom, Scale: types.DefaultScale}},
	); err != nil {
		t.Fatalf("failed second save: %v", err)
	}

	got, err := s.GetBuildingByID(ctx, tenantA.ID, building.ID)
	if err != nil {
		t.Fatalf("failed to get building: %v", err)
	}
	if got.Name != "HQ Renamed" {
		t.Errorf("expected renamed building, got %q", got.Name)
	}

	rooms, _ := s.ListRoomsWithCounts(ctx, building.ID)
	if len(rooms) != 1 || rooms[0].ID != newRoom {
		t.Errorf("expected only the new room, got %+v", rooms)
	}
	if rooms[0].AssetCount != 1 {
		t.Errorf("expected asset count 1, got %d", rooms[0].AssetCount)
	}

	floors, _ := s.ListFloors(ctx, building.ID)
	if len(floors) != 1 || floors[0].Number != 2 {
		t.Errorf("expected only the new floor, got %+v", floors)
	}
}

func TestInMemory_UpdateTenant(t *testing.T) {
	s, tenantA, _ := newTestStore(t)
	ctx := context.Background()

	tenantA.Name = "Renamed"
	if err := s.UpdateTenant(ctx, tenantA); err != nil {
		t.Fatalf("failed to update tenant: %v", err)
	}

	got, err := s.GetTenantByID(ctx, tenantA.ID)
	if err != nil {
		t.Fatalf("failed to get tenant: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("expected renamed tenant, got %q", got.Name)
	}

	missing := types.Tenant{ID: "no-such-id", Name: "X"}
	if err := s.UpdateTenant(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemory_DeleteLocationDetachesBuildings(t *testing.T) {
	s, tenantA, _ := newTestStore(t)
	ctx := context.Background()

	loc, err := s.CreateLocation(ctx, &types.Location{TenantID: tenantA.ID, Name: "Bergen"})
	if err != nil {
		t.Fatalf("failed to create location: %v", err)
	}
	building, err := s.CreateBuilding(ctx, &types.Building{TenantID: tenantA.ID, LocationID: &loc.ID, Name: "HQ"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	if err := s.DeleteLocation(ctx, tenantA.ID, loc.ID); err != nil {
		t.Fatalf("failed to delete location: %v", err)
	}

	got, err := s.GetBuildingByID(ctx, tenantA.ID, building.ID)
	if err != nil {
		t.Fatalf("expected building to survive location deletion, got %v", err)
	}
	if got.LocationID != nil {
		t.Errorf("expected building location link to be cleared")
	}
}
