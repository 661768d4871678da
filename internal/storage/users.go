// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/asset3d/facility-service/internal/types"
)

const userColumns = "id, tenant_id, email, password_hash, name, role, active, permissions, created_at"

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	rawPerms, err := json.Marshal(perms)
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "tenant_id", "email", "password_hash", "name", "role", "active", "permissions").
		Values(id.String(), u.TenantID, u.Email, u.PasswordHash, u.Name, u.Role, u.Active, rawPerms).
		Suffix("RETURNING " + userColumns).
		QueryRowContext(ctx)

	created, err := scanUser(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "user email")
		}
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "user tenant")
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return created, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"email": email})
}

func (s *Storage) getUser(ctx context.Context, pred sq.Eq) (*types.User, error) {
	row := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		Where(pred).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *Storage) ListUsers(ctx context.Context, tenantID string) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsers")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		OrderBy("created_at")

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, u *types.User) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUser")
	defer span.End()

	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	rawPerms, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	res, err := s.db.Statement(ctx).
		Update("users").
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("name", u.Name).
		Set("role", u.Role).
		Set("active", u.Active).
		Set("permissions", rawPerms).
		Where(sq.Eq{"id": u.ID, "tenant_id": u.TenantID}).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return WrapDuplicateKeyError(err, "user email")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return requireAffected(res)
}

func (s *Storage) DeleteUser(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteUser")
	defer span.End()

	query := s.db.Statement(ctx).
		Delete("users").
		Where(sq.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": tenantID})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return requireAffected(res)
}

func scanUser(row rowScanner) (*types.User, error) {
	var u types.User
	var rawPerms []byte

	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active, &rawPerms, &u.CreatedAt); err != nil {
		return nil, err
	}

	perms, err := unmarshalPermissions(rawPerms)
	if err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	u.Permissions = perms

	return &u, nil
}
