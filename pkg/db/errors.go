package db

import "errors"

var (
	// ErrParseConfig indicates the connection URL could not be parsed.
	ErrParseConfig = errors.New("db: failed to parse connection config")

	// ErrConnect indicates the database stayed unreachable through
	// all retry attempts.
	ErrConnect = errors.New("db: failed to open connection")

	// ErrNotFound indicates a lookup matched no row.
	ErrNotFound = errors.New("db: not found")

	// ErrHealthcheck indicates the readiness probe failed.
	ErrHealthcheck = errors.New("db: healthcheck failed")

	// ErrSetDialect indicates the migrator could not select the
	// postgres dialect.
	ErrSetDialect = errors.New("db: migrator failed to set dialect")

	// ErrApplyMigrations indicates a migration failed to apply.
	ErrApplyMigrations = errors.New("db: failed to apply migrations")
)
