package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"hospital-management/internal/configs"
	"hospital-management/migrations"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "Configuration file")
	flag.Parse()

	if configFile == "" {
		log.Fatalln("the configuration file should be provided")
	}

	config := configs.MustLoad(configFile)

	db, err := sql.Open(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		log.Fatalf("an error occurred while opening the database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err = db.Ping(); err != nil {
		log.Fatalf("an error occurred while reaching the database: %v", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("an error occurred while creating the database driver: %v", err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatalf("an error occurred while reading the migration scripts: %v", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Fatalf("an error occurred while creating the migrator: %v", err)
	}
	defer func() { _, _ = migrator.Close() }()

	switch flag.Arg(0) {
	case "down":
		if err = migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("an error occurred while migrating down: %v", err)
		}
	case "force":
		version, convErr := strconv.Atoi(flag.Arg(1))
		if convErr != nil {
			log.Fatalf("an invalid version was given: %v", convErr)
		}
		if err = migrator.Force(version); err != nil {
			log.Fatalf("an error occurred while forcing the version: %v", err)
		}
	case "", "up":
		if err = migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("an error occurred while migrating up: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		os.Exit(1)
	}

	fmt.Println("migrations complete")
}
