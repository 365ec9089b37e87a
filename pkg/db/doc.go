// Package db provides the PostgreSQL plumbing for the application:
// pool setup over pgx with startup retry, generic CRUD helpers, raw
// SQL helpers, transactions, goose migrations, a readiness probe, and
// a shutdown hook.
//
// # Usage
//
//	pool, err := db.Connect(ctx, db.Config{
//	    URL: cfg.Get("database.url"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	user, err := db.FindByID[User](ctx, pool, "users", id)
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    ...
//	})
//
// Migrations ship as an embedded filesystem of goose SQL files:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	err = db.Migrate(ctx, pool, migrations, "schema_migrations", log)
package db
