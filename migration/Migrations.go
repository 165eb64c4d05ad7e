package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//go:embed files/*.sql
var migrationFiles embed.FS

// UpMigrations brings the database schema to the latest version. Runs on a
// short-lived database/sql connection separate from the go-pg pool.
func UpMigrations(creds *view.DbCredentials) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		creds.Username, creds.Password, creds.Host, creds.Port, creds.Database)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errors.Wrap(err, "failed to open migration connection")
	}
	defer db.Close()

	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	before, _, _ := m.Version()
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Infof("Database schema is up to date at version %d", before)
			return nil
		}
		return errors.Wrap(err, "migration failed")
	}
	after, _, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "failed to read schema version after migration")
	}
	log.Infof("Database schema migrated to version %d", after)
	return nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationFiles, "files")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration source driver")
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		sourceDriver.Close()
		return nil, errors.Wrap(err, "failed to create migration database driver")
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		sourceDriver.Close()
		return nil, errors.Wrap(err, "failed to create migrate instance")
	}
	return m, nil
}
