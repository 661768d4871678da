// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/asset3d/facility-service/internal/types"
)

var assetColumns = []string{
	"id", "tenant_id", "category_id", "room_id", "supplier_id", "name", "model",
	"pos_x", "pos_y", "pos_z", "rot_x", "rot_y", "rot_z", "scale_x", "scale_y", "scale_z",
	"price", "currency", "created_at", "updated_at",
}

func prefixedAssetColumns(alias string) []string {
	out := make([]string, len(assetColumns))
	for i, c := range assetColumns {
		out[i] = alias + "." + c
	}
	return out
}

func (s *Storage) CreateAsset(ctx context.Context, a *types.Asset) (*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAsset")
	defer span.End()

	return s.insertAsset(ctx, a)
}

func (s *Storage) insertAsset(ctx context.Context, a *types.Asset) (*types.Asset, error) {
	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate asset ID: %w", err)
		}
		a.ID = id.String()
	}

	row := s.db.Statement(ctx).
		Insert("assets").
		Columns(
			"id", "tenant_id", "category_id", "room_id", "supplier_id", "name", "model",
			"pos_x", "pos_y", "pos_z", "rot_x", "rot_y", "rot_z", "scale_x", "scale_y", "scale_z",
			"price", "currency",
		).
		Values(
			a.ID, a.TenantID, a.CategoryID, a.RoomID, a.SupplierID, a.Name, a.Model,
			a.Position.X, a.Position.Y, a.Position.Z,
			a.Rotation.X, a.Rotation.Y, a.Rotation.Z,
			a.Scale.X, a.Scale.Y, a.Scale.Z,
			a.Price, a.Currency,
		).
		Suffix("RETURNING " + strings.Join(assetColumns, ", ")).
		QueryRowContext(ctx)

	created, err := scanAsset(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "asset reference")
		}
		return nil, fmt.Errorf("failed to insert asset: %w", err)
	}

	return created, nil
}

func (s *Storage) GetAssetByID(ctx context.Context, tenantID, id string) (*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAssetByID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(assetColumns...).
		From("assets").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	a, err := scanAsset(query.QueryRowContext(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return a, nil
}

func (s *Storage) ListAssets(ctx context.Context, tenantID string) ([]*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAssets")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(assetColumns...).
		From("assets").
		OrderBy("created_at")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	return s.queryAssets(ctx, query)
}

func (s *Storage) ListAssetsByRoom(ctx context.Context, roomID string) ([]*types.Asset, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAssetsByRoom")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(assetColumns...).
		From("assets").
		Where(sq.Eq{"room_id": roomID}).
		OrderBy("created_at")

	return s.queryAssets(ctx, query)
}

func (s *Storage) queryAssets(ctx context.Context, query sq.SelectBuilder) ([]*types.Asset, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*types.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	return assets, nil
}

func (s *Storage) UpdateAsset(ctx context.Context, a *types.Asset) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateAsset")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("assets").
		Set("category_id", a.CategoryID).
		Set("room_id", a.RoomID).
		Set("supplier_id", a.SupplierID).
		Set("name", a.Name).
		Set("model", a.Model).
		Set("pos_x", a.Position.X).Set("pos_y", a.Position.Y).Set("pos_z", a.Position.Z).
		Set("rot_x", a.Rotation.X).Set("rot_y", a.Rotation.Y).Set("rot_z", a.Rotation.Z).
		Set("scale_x", a.Scale.X).Set("scale_y", a.Scale.Y).Set("scale_z", a.Scale.Z).
		Set("price", a.Price).
		Set("currency", a.Currency).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": a.ID, "tenant_id": a.TenantID}).
		ExecContext(ctx)

	if err != nil {
		return WrapForeignKeyError(err, "asset reference")
	}

	return requireAffected(res)
}

func (s *Storage) DeleteAsset(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteAsset")
	defer span.End()

	query := s.db.Statement(ctx).
		Delete("assets").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return requireAffected(res)
}

func scanAsset(row rowScanner) (*types.Asset, error) {
	var a types.Asset
	if err := row.Scan(
		&a.ID, &a.TenantID, &a.CategoryID, &a.RoomID, &a.SupplierID, &a.Name, &a.Model,
		&a.Position.X, &a.Position.Y, &a.Position.Z,
		&a.Rotation.X, &a.Rotation.Y, &a.Rotation.Z,
		&a.Scale.X, &a.Scale.Y, &a.Scale.Z,
		&a.Price, &a.Currency, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
