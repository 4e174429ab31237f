package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate applies the embedded migrations for driver. It runs once at startup;
// every statement is idempotent so it can also adopt a database created by
// the previous deployment.
func Migrate(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// 1. Database driver on top of the pool gorm already opened
	var target migratedb.Driver
	switch driver {
	case DriverPostgres:
		target, err = migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	case DriverSQLite:
		target, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return err
	}

	// 2. Embedded source for this dialect
	source, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return err
	}

	// 3. Run all pending up migrations
	instance, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		return err
	}
	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
