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

const tenantColumns = "id, name, type, parent_id, settings, created_at"

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	settings, err := marshalJSON(t.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tenant settings: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "type", "parent_id", "settings").
		Values(id.String(), t.Name, t.Type, t.ParentID, settings).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx)

	created, err := scanTenant(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return created, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	return s.listTenants(ctx, nil)
}

func (s *Storage) ListTenantsByType(ctx context.Context, tenantType string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenantsByType")
	defer span.End()

	return s.listTenants(ctx, sq.Eq{"type": tenantType})
}

func (s *Storage) ListTenantsByParent(ctx context.Context, parentID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenantsByParent")
	defer span.End()

	return s.listTenants(ctx, sq.Eq{"parent_id": parentID})
}

func (s *Storage) listTenants(ctx context.Context, pred interface{}) ([]*types.Tenant, error) {
	query := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		OrderBy("created_at")

	if pred != nil {
		query = query.Where(pred)
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

func (s *Storage) UpdateTenant(ctx context.Context, t *types.Tenant) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenant")
	defer span.End()

	settings, err := marshalJSON(t.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode tenant settings: %w", err)
	}

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("name", t.Name).
		Set("parent_id", t.ParentID).
		Set("settings", settings).
		Where(sq.Eq{"id": t.ID}).
		ExecContext(ctx)

	if err != nil {
		return WrapForeignKeyError(err, "tenant parent")
	}

	return requireAffected(res)
}

func (s *Storage) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTenant")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tenants").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTenant(row rowScanner) (*types.Tenant, error) {
	var t types.Tenant
	var rawSettings []byte

	if err := row.Scan(&t.ID, &t.Name, &t.Type, &t.ParentID, &rawSettings, &t.CreatedAt); err != nil {
		return nil, err
	}

	settings, err := unmarshalSettings(rawSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tenant settings: %w", err)
	}
	t.Settings = settings

	return &t, nil
}

func requireAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
