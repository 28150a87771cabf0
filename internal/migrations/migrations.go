package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var MigrationFiles embed.FS

// Dialect selects the embedded migration set and the golang-migrate database driver.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// RunMigrations brings the completion tables of db up to the latest embedded version for
// dialect. With autoMigrate off it only reports the current version.
func RunMigrations(db *sql.DB, dialect Dialect, autoMigrate bool) error {
	sourceDriver, err := iofs.New(MigrationFiles, string(dialect))
	if err != nil {
		return fmt.Errorf("open %s migrations: %w", dialect, err)
	}

	dbDriver, err := databaseDriver(db, dialect)
	if err != nil {
		return fmt.Errorf("%s migration driver: %w", dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(dialect), dbDriver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}

	if dirty {
		slog.Warn("[Migrations] Schema left dirty by an interrupted run",
			"dialect", dialect,
			"version", version,
			"action", "forcing current version",
		)

		// Every migration is idempotent (IF NOT EXISTS), so re-running from the forced version is safe.
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("force schema version %d: %w", version, err)
		}
		slog.Info("[Migrations] Dirty state cleared", "version", version)
	}

	if !autoMigrate {
		slog.Info("[Migrations] auto_migrate is off, leaving schema as is",
			"dialect", dialect,
			"current_version", version,
			"dirty", dirty,
		)
		return nil
	}

	slog.Info("[Migrations] Applying pending migrations", "dialect", dialect, "current_version", version)

	err = m.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Schema up to date", "dialect", dialect, "version", version)
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version after migrate: %w", err)
	}

	slog.Info("[Migrations] Schema migrated",
		"dialect", dialect,
		"from_version", version,
		"to_version", newVersion,
	)

	return nil
}

func databaseDriver(db *sql.DB, dialect Dialect) (database.Driver, error) {
	switch dialect {
	case DialectPostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case DialectSQLite:
		return sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}
