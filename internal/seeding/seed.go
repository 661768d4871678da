// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

// Package seeding loads the demo dataset used by mock mode and by the
// seed command against a fresh database.
package seeding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
)

// DemoAdminEmail and DemoPassword are the credentials for the seeded
// admin account. Demo data only, never for production databases.
const (
	DemoAdminEmail = "admin@asset3d.no"
	DemoPassword   = "demo123"
)

// Seed populates the store with a demo hierarchy: the admin root, one
// group with two companies, a user per level and a furnished building.
// It is a no-op when the demo admin already exists.
func Seed(ctx context.Context, s storage.StorageInterface, logger logging.LoggerInterface) error {
	if _, err := s.GetUserByEmail(ctx, DemoAdminEmail); err == nil {
		logger.Debug("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := authentication.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	root, err := s.CreateTenant(ctx, &types.Tenant{Name: "Asset3D", Type: types.TenantTypeAdmin})
	if err != nil {
		return err
	}

	group, err := s.CreateTenant(ctx, &types.Tenant{Name: "Nordic Facilities Group", Type: types.TenantTypeGroup})
	if err != nil {
		return err
	}

	company, err := s.CreateTenant(ctx, &types.Tenant{
		Name:     "Fjord Offices AS",
		Type:     types.TenantTypeCompany,
		ParentID: &group.ID,
	})
	if err != nil {
		return err
	}

	if _, err := s.CreateTenant(ctx, &types.Tenant{
		Name:     "Bergen Workspaces AS",
		Type:     types.TenantTypeCompany,
		ParentID: &group.ID,
	}); err != nil {
		return err
	}

	users := []*types.User{
		{TenantID: root.ID, Email: DemoAdminEmail, Name: "Demo Admin", Role: types.RoleAdmin},
		{TenantID: group.ID, Email: "group@asset3d.no", Name: "Group Manager", Role: types.RoleGroup},
		{TenantID: company.ID, Email: "company@asset3d.no", Name: "Company Manager", Role: types.RoleCompany},
		{TenantID: company.ID, Email: "user@asset3d.no", Name: "Facility User", Role: types.RoleUser},
	}
	for _, u := range users {
		u.PasswordHash = hash
		u.Active = true
		if _, err := s.CreateUser(ctx, u); err != nil {
			return err
		}
	}

	supplier, err := s.CreateSupplier(ctx, &types.Supplier{
		TenantID:     company.ID,
		Name:         "Nordisk Kontormøbler",
		ContactEmail: "sales@nordiskkontor.no",
		Phone:        "+47 55 12 34 56",
	})
	if err != nil {
		return err
	}

	category, err := s.CreateCategory(ctx, &types.Category{TenantID: company.ID, Name: "Furniture"})
	if err != nil {
		return err
	}
	if _, err := s.CreateCategory(ctx, &types.Category{TenantID: company.ID, Name: "Electronics"}); err != nil {
		return err
	}

	location, err := s.CreateLocation(ctx, &types.Location{
		TenantID: company.ID,
		Name:     "Bryggen Office",
		Address:  "Bryggen 5",
		City:     "Bergen",
		Country:  "Norway",
	})
	if err != nil {
		return err
	}

	building, err := s.CreateBuilding(ctx, &types.Building{
		TenantID:   company.ID,
		LocationID: &location.ID,
		Name:       "Main Building",
	})
	if err != nil {
		return err
	}

	receptionID := uuid.NewString()
	meetingID := uuid.NewString()

	floors := []*types.Floor{
		{BuildingID: building.ID, Number: 1, Name: "Ground Floor"},
		{BuildingID: building.ID, Number: 2, Name: "Office Floor"},
	}
	rooms := []*types.Room{
		{ID: receptionID, Name: "Reception", FloorNumber: 1, Width: 8, Depth: 6, Height: 3},
		{ID: meetingID, Name: "Meeting Room A", FloorNumber: 2, Width: 5, Depth: 4, Height: 3, PosX: 2, PosY: 1},
		{Name: "Open Office", FloorNumber: 2, Width: 12, Depth: 9, Height: 3, PosX: 7, PosY: 1},
	}
	assets := []*types.Asset{
		{
			Name: "Reception Desk", Model: "desk-01",
			CategoryID: &category.ID, SupplierID: &supplier.ID, RoomID: &receptionID,
			Price: 4500, Currency: "NOK",
		},
		{
			Name: "Conference Table", Model: "table-03",
			CategoryID: &category.ID, SupplierID: &supplier.ID, RoomID: &meetingID,
			Price: 7900, Currency: "NOK",
		},
	}
	for _, a := range assets {
		a.Scale = types.DefaultScale
	}

	if err := s.ReplaceBuildingContents(ctx, building, floors, rooms, assets); err != nil {
		return err
	}

	logger.Infof("seeded demo data: admin login %s", DemoAdminEmail)
	return nil
}
