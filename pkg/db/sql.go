package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Exec runs a raw statement and returns the number of affected rows.
func Exec(ctx context.Context, q Querier, sql string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Query runs a raw query and collects every row into a T, matching
// columns to struct fields by name.
//
// Example:
//
//	users, err := db.Query[User](ctx, pool,
//	    "SELECT * FROM users WHERE created_at > @since",
//	    pgx.NamedArgs{"since": since})
func Query[T any](ctx context.Context, q Querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

// QueryOne runs a raw query expected to match exactly one row.
// Returns ErrNotFound when it matches none.
func QueryOne[T any](ctx context.Context, q Querier, sql string, args ...any) (T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return row, nil
}
