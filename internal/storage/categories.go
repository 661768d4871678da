// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/asset3d/facility-service/internal/types"
)

func (s *Storage) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCategory")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category ID: %w", err)
	}

	var created types.Category
	err = s.db.Statement(ctx).
		Insert("categories").
		Columns("id", "tenant_id", "name").
		Values(id.String(), c.TenantID, c.Name).
		Suffix("RETURNING id, tenant_id, name").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TenantID, &created.Name)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "category name")
		}
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "category tenant")
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCategories")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "tenant_id", "name").
		From("categories").
		OrderBy("name")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}
