// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	// Statement returns a squirrel statement builder bound to the pool, or
	// to the transaction attached to ctx when one is present.
	Statement(ctx context.Context) sq.StatementBuilderType
	// WithTx runs fn inside a transaction, rolling back on error.
	WithTx(ctx context.Context, fn func(context.Context) error) error
	Ping(ctx context.Context) error
	Close()
}

// TxInterface is the subset of *sql.Tx the client relies on. It doubles
// as a squirrel runner so statements can execute against it directly.
type TxInterface interface {
	Commit() error
	Rollback() error

	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
