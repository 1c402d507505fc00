package mysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationURL turns a go-sql-driver DSN into a golang-migrate database URL.
// Migration files hold several statements, so multiStatements is forced on.
func MigrationURL(dsn string) string {
	if !strings.Contains(dsn, "multiStatements=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "multiStatements=true"
	}
	return "mysql://" + dsn
}

// NewMigrator opens the migrations in dir against the database behind dsn.
// The caller must Close it.
func NewMigrator(dsn, dir string) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+dir, MigrationURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("open migrations %s: %w", dir, err)
	}
	return m, nil
}

// Migrate applies every pending up migration. An up-to-date schema is not an error.
func Migrate(dsn, dir string) error {
	m, err := NewMigrator(dsn, dir)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
