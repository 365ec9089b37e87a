package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx,
// so every helper works inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Insert writes one row into table with the given column values.
//
// Example:
//
//	err := db.Insert(ctx, pool, "users", pgx.NamedArgs{
//	    "id":    id,
//	    "email": email,
//	})
func Insert(ctx context.Context, q Querier, table string, values pgx.NamedArgs) error {
	cols := sortedKeys(values)

	placeholders := make([]string, len(cols))
	for i, col := range cols {
		placeholders[i] = "@" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	_, err := q.Exec(ctx, query, values)
	return err
}

// FindByID loads the row with the given id into T, matching columns
// to struct fields by name. Returns ErrNotFound when no row matches.
func FindByID[T any](ctx context.Context, q Querier, table string, id any) (T, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = @id", pgx.Identifier{table}.Sanitize())

	rows, err := q.Query(ctx, query, pgx.NamedArgs{"id": id})
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

// Update sets the given columns on the row with the given id.
// Returns ErrNotFound when no row matches.
func Update(ctx context.Context, q Querier, table string, id any, values pgx.NamedArgs) error {
	cols := sortedKeys(values)

	assignments := make([]string, len(cols))
	for i, col := range cols {
		assignments[i] = col + " = @" + col
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = @id",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(assignments, ", "),
	)

	args := pgx.NamedArgs{"id": id}
	for col, v := range values {
		args[col] = v
	}

	tag, err := q.Exec(ctx, query, args)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the row with the given id. Returns ErrNotFound
// when no row matches.
func DeleteByID(ctx context.Context, q Querier, table string, id any) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = @id", pgx.Identifier{table}.Sanitize())

	tag, err := q.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func sortedKeys(values pgx.NamedArgs) []string {
	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	slices.Sort(cols)
	return cols
}
