package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/pkg/database"
)

// Утилита обслуживания схемы PostgreSQL: up, down, version, force N.
// force нужен, чтобы снять dirty-состояние после неудачной миграции.
func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-config path] up|down|version|force N")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Migrations apply only to postgres, current driver: %s", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	m, err := database.NewPostgresMigrator(db)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatalf("Failed to read version: %v", verr)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version number")
		}
		version, perr := strconv.Atoi(flag.Arg(1))
		if perr != nil {
			log.Fatalf("Invalid version %q: %v", flag.Arg(1), perr)
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
		err = m.Force(version)
	default:
		log.Fatalf("Unknown command %q", cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration %s failed: %v", flag.Arg(0), err)
	}
	fmt.Println("Success!")
}
