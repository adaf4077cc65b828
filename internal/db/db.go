// Package db provides PostgreSQL-backed repository implementations for
// verdant. All repositories accept a DBTX interface that is satisfied by
// both *pgxpool.Pool (for normal queries) and pgx.Tx (for transactional
// execution), enabling clean transaction support.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the minimal interface shared by *pgxpool.Pool and pgx.Tx.
// Repositories accept this so the same code works inside or outside a
// transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CalendarInvalidator drops cached calendar months for a user. Satisfied
// by the calcache.Cache; reminder write paths call it because any write
// can change a month view.
type CalendarInvalidator interface {
	InvalidateUser(userID string)
}

// nilIfEmpty converts an empty string to nil for nullable columns.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
