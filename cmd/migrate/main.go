package main

import (
	"errors"
	"flag"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	"ski_planner/internal/adapters/observability"
	"ski_planner/internal/shared"
	mysqlrepo "ski_planner/internal/storage/mysql"
)

func main() {
	var (
		dsn     string
		path    string
		command string
	)
	flag.StringVar(&dsn, "dsn", "", "MySQL DSN; defaults to MYSQL_DSN")
	flag.StringVar(&path, "path", "migrations", "path to migrations directory")
	flag.StringVar(&command, "command", "up", "migration command: up, down, version, force")
	flag.Parse()

	shared.LoadDotEnv()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)
	if dsn == "" {
		dsn = cfg.MySQLDSN
	}

	log.Info().Str("path", path).Str("command", command).Msg("connecting to database")
	m, err := mysqlrepo.NewMigrator(dsn, path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migration instance")
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info().Msg("no migrations to run")
		case err != nil:
			log.Fatal().Err(err).Msg("failed to run migrations")
		default:
			log.Info().Msg("migrations applied")
		}

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("failed to roll back migrations")
		}
		log.Info().Msg("rollback completed")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current version")

	case "force":
		if flag.NArg() < 1 {
			log.Fatal().Msg("force requires a version number: -command force <version>")
		}
		version, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			log.Fatal().Err(err).Msg("invalid version number")
		}
		if err := m.Force(version); err != nil {
			log.Fatal().Err(err).Msg("failed to force version")
		}
		log.Info().Int("version", version).Msg("forced version")

	default:
		log.Fatal().Str("command", command).Msg("unknown command (use: up, down, version, force)")
	}
}
