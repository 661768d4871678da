// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/asset3d/facility-service/internal/types"
)

const buildingColumns = "id, tenant_id, location_id, name"

func (s *Storage) CreateBuilding(ctx context.Context, b *types.Building) (*types.Building, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateBuilding")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate building ID: %w", err)
	}

	var created types.Building
	err = s.db.Statement(ctx).
		Insert("buildings").
		Columns("id", "tenant_id", "location_id", "name").
		Values(id.String(), b.TenantID, b.LocationID, b.Name).
		Suffix("RETURNING " + buildingColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TenantID, &created.LocationID, &created.Name)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "building tenant or location")
		}
		return nil, fmt.Errorf("failed to insert building: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetBuildingByID(ctx context.Context, tenantID, id string) (*types.Building, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetBuildingByID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(buildingColumns).
		From("buildings").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	var b types.Building
	err := query.QueryRowContext(ctx).
		Scan(&b.ID, &b.TenantID, &b.LocationID, &b.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get building: %w", err)
	}

	return &b, nil
}

func (s *Storage) ListBuildings(ctx context.Context, tenantID string) ([]*types.Building, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListBuildings")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(buildingColumns).
		From("buildings").
		OrderBy("name")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*types.Building
	for rows.Next() {
		var b types.Building
		if err := rows.Scan(&b.ID, &b.TenantID, &b.LocationID, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating building rows: %w", err)
	}

	return buildings, nil
}

func (s *Storage) UpdateBuilding(ctx context.Context, b *types.Building) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateBuilding")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("buildings").
		Set("name", b.Name).
		Set("location_id", b.LocationID).
		Where(sq.Eq{"id": b.ID, "tenant_id": b.TenantID}).
		ExecContext(ctx)

	if err != nil {
		return WrapForeignKeyError(err, "building location")
	}

	return requireAffected(res)
}

// DeleteBuilding removes the building. Rooms referencing it and assets
// placed in those rooms go with it via ON DELETE CASCADE.
func (s *Storage) DeleteBuilding(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteBuilding")
	defer span.End()

	query := s.db.Statement(ctx).
		Delete("buildings").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}

	return requireAffected(res)
}

func (s *Storage) ListFloors(ctx context.Context, buildingID string) ([]*types.Floor, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListFloors")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "building_id", "number", "name").
		From("floors").
		Where(sq.Eq{"building_id": buildingID}).
		OrderBy("number").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list floors: %w", err)
	}
	defer rows.Close()

	var floors []*types.Floor
	for rows.Next() {
		var f types.Floor
		if err := rows.Scan(&f.ID, &f.BuildingID, &f.Number, &f.Name); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		floors = append(floors, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating floor rows: %w", err)
	}

	return floors, nil
}

func (s *Storage) ListRoomsWithCounts(ctx context.Context, buildingID string) ([]*types.RoomWithCount, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListRoomsWithCounts")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(
			"r.id", "r.tenant_id", "r.building_id", "r.name", "r.floor_number",
			"r.width", "r.depth", "r.height", "r.pos_x", "r.pos_y",
			"COUNT(a.id) AS asset_count",
		).
		From("rooms r").
		LeftJoin("assets a ON a.room_id = r.id").
		Where(sq.Eq{"r.building_id": buildingID}).
		GroupBy("r.id").
		OrderBy("r.floor_number", "r.name").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var out []*types.RoomWithCount
	for rows.Next() {
		var r types.RoomWithCount
		if err := rows.Scan(
			&r.ID, &r.TenantID, &r.BuildingID, &r.Name, &r.FloorNumber,
			&r.Width, &r.Depth, &r.Height, &r.PosX, &r.PosY,
			&r.AssetCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return out, nil
}

func (s *Storage) ListAssetsByBuilding(ctx context.Context, buildingID string) ([]*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAssetsByBuilding")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(prefixedAssetColumns("a")...).
		From("assets a").
		Join("rooms r ON a.room_id = r.id").
		Where(sq.Eq{"r.building_id": buildingID}).
		OrderBy("a.created_at")

	return s.queryAssets(ctx, query)
}

// ReplaceBuildingContents swaps the building's floors, rooms and placed
// assets in one transaction: the one endpoint with an all-or-nothing
// contract. Assets placed in the old rooms are removed by the room
// cascade before the new state is inserted.
func (s *Storage) ReplaceBuildingContents(ctx context.Context, b *types.Building, floors []*types.Floor, rooms []*types.Room, assets []*types.Asset) error {
	ctx, span := s.tracer.Start(ctx, "storage.ReplaceBuildingContents")
	defer span.End()

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.UpdateBuilding(ctx, b); err != nil {
			return err
		}

		if _, err := s.db.Statement(ctx).
			Delete("rooms").
			Where(sq.Eq{"building_id": b.ID}).
			ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear rooms: %w", err)
		}

		if _, err := s.db.Statement(ctx).
			Delete("floors").
			Where(sq.Eq{"building_id": b.ID}).
			ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to clear floors: %w", err)
		}

		for _, f := range floors {
			if f.ID == "" {
				id, err := uuid.NewV7()
				if err != nil {
					return fmt.Errorf("failed to generate floor ID: %w", err)
				}
				f.ID = id.String()
			}
			f.BuildingID = b.ID

			if _, err := s.db.Statement(ctx).
				Insert("floors").
				Columns("id", "building_id", "number", "name").
				Values(f.ID, f.BuildingID, f.Number, f.Name).
				ExecContext(ctx); err != nil {
				return fmt.Errorf("failed to insert floor: %w", err)
			}
		}

		newRoomIDs := make(map[string]bool, len(rooms))
		for _, r := range rooms {
			if r.ID == "" {
				id, err := uuid.NewV7()
				if err != nil {
					return fmt.Errorf("failed to generate room ID: %w", err)
				}
				r.ID = id.String()
			}
			r.BuildingID = b.ID
			r.TenantID = b.TenantID
			newRoomIDs[r.ID] = true

			if _, err := s.db.Statement(ctx).
				Insert("rooms").
				Columns("id", "tenant_id", "building_id", "name", "floor_number", "width", "depth", "height", "pos_x", "pos_y").
				Values(r.ID, r.TenantID, r.BuildingID, r.Name, r.FloorNumber, r.Width, r.Depth, r.Height, r.PosX, r.PosY).
				ExecContext(ctx); err != nil {
				return fmt.Errorf("failed to insert room: %w", err)
			}
		}

		for _, a := range assets {
			// The room FK alone would also accept rooms outside this
			// building, or another tenant's. Placements must reference
			// rooms from this payload, same as the in-memory backend.
			if a.RoomID == nil || !newRoomIDs[*a.RoomID] {
				return ErrForeignKeyViolation
			}
			a.TenantID = b.TenantID
			if _, err := s.insertAsset(ctx, a); err != nil {
				return err
			}
		}

		return nil
	})
}
