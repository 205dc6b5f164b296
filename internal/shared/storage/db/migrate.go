package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// RunMigrations applies embedded SQL migrations via goose for the dialect
// matching databaseURL. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, databaseURL string) error {
	if database == nil {
		return nil
	}
	driver, _ := DriverFor(databaseURL)
	dialect, dir := "sqlite3", "migrations/sqlite"
	if driver == "pgx" {
		dialect, dir = "postgres", "migrations/postgres"
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, dir)
}
