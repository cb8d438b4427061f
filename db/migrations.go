// Package db carries the SQL schema migrations of the stats store.
package db

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var Migrations embed.FS

// NewMigrator returns a migrator for dbURL backed by the embedded
// migrations.
func NewMigrator(dbURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
