package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/intunemindset/IM-BookingService/internal/config"
	appmigrations "github.com/intunemindset/IM-BookingService/migrations"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("db driver: %v", err)
	}

	srcDriver, err := iofs.New(appmigrations.FS, ".")
	if err != nil {
		log.Fatalf("source driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	// Поддержка команд: migrate [down|force <version>], по умолчанию - up
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "down":
			if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				log.Fatalf("migrate down: %v", err)
			}
			fmt.Println("rolled back one migration")
			return
		case "force":
			if len(os.Args) < 3 {
				log.Fatal("force requires a version argument")
			}
			version, err := strconv.Atoi(os.Args[2])
			if err != nil {
				log.Fatalf("invalid version: %v", err)
			}
			if err := m.Force(version); err != nil {
				log.Fatalf("force version: %v", err)
			}
			fmt.Printf("forced version to %d\n", version)
			return
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate up: %v", err)
	}

	fmt.Println("migrations complete")
}
