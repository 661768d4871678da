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

const supplierColumns = "id, tenant_id, name, contact_email, phone"

func (s *Storage) CreateSupplier(ctx context.Context, sup *types.Supplier) (*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSupplier")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate supplier ID: %w", err)
	}

	var created types.Supplier
	err = s.db.Statement(ctx).
		Insert("suppliers").
		Columns("id", "tenant_id", "name", "contact_email", "phone").
		Values(id.String(), sup.TenantID, sup.Name, sup.ContactEmail, sup.Phone).
		Suffix("RETURNING " + supplierColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TenantID, &created.Name, &created.ContactEmail, &created.Phone)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "supplier tenant")
		}
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetSupplierByID(ctx context.Context, tenantID, id string) (*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSupplierByID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(supplierColumns).
		From("suppliers").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	var sup types.Supplier
	err := query.QueryRowContext(ctx).
		Scan(&sup.ID, &sup.TenantID, &sup.Name, &sup.ContactEmail, &sup.Phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return &sup, nil
}

func (s *Storage) ListSuppliers(ctx context.Context, tenantID string) ([]*types.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListSuppliers")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(supplierColumns).
		From("suppliers").
		OrderBy("name")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*types.Supplier
	for rows.Next() {
		var sup types.Supplier
		if err := rows.Scan(&sup.ID, &sup.TenantID, &sup.Name, &sup.ContactEmail, &sup.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, &sup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", err)
	}

	return suppliers, nil
}

func (s *Storage) UpdateSupplier(ctx context.Context, sup *types.Supplier) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSupplier")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("suppliers").
		Set("name", sup.Name).
		Set("contact_email", sup.ContactEmail).
		Set("phone", sup.Phone).
		Where(sq.Eq{"id": sup.ID, "tenant_id": sup.TenantID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	return requireAffected(res)
}

func (s *Storage) DeleteSupplier(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteSupplier")
	defer span.End()

	query := s.db.Statement(ctx).
		Delete("suppliers").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	return requireAffected(res)
}
