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

const locationColumns = "id, tenant_id, name, address, city, country"

func (s *Storage) CreateLocation(ctx context.Context, l *types.Location) (*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateLocation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate location ID: %w", err)
	}

	var created types.Location
	err = s.db.Statement(ctx).
		Insert("locations").
		Columns("id", "tenant_id", "name", "address", "city", "country").
		Values(id.String(), l.TenantID, l.Name, l.Address, l.City, l.Country).
		Suffix("RETURNING " + locationColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TenantID, &created.Name, &created.Address, &created.City, &created.Country)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "location tenant")
		}
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetLocationByID(ctx context.Context, tenantID, id string) (*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetLocationByID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(locationColumns).
		From("locations").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	var l types.Location
	err := query.QueryRowContext(ctx).
		Scan(&l.ID, &l.TenantID, &l.Name, &l.Address, &l.City, &l.Country)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &l, nil
}

func (s *Storage) ListLocations(ctx context.Context, tenantID string) ([]*types.Location, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListLocations")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(locationColumns).
		From("locations").
		OrderBy("name")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*types.Location
	for rows.Next() {
		var l types.Location
		if err := rows.Scan(&l.ID, &l.TenantID, &l.Name, &l.Address, &l.City, &l.Country); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", err)
	}

	return locations, nil
}

func (s *Storage) UpdateLocation(ctx context.Context, l *types.Location) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateLocation")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("locations").
		Set("name", l.Name).
		Set("address", l.Address).
		Set("city", l.City).
		Set("country", l.Country).
		Where(sq.Eq{"id": l.ID, "tenant_id": l.TenantID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}

	return requireAffected(res)
}

func (s *Storage) DeleteLocation(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteLocation")
	defer span.End()

	query := s.db.Statement(ctx).
		Delete("locations").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return requireAffected(res)
}
