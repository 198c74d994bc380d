package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/transcript-search/internal/infrastructure/database"
	"github.com/johnquangdev/transcript-search/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or status")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply (0 = all)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Get the underlying SQL database connection from GORM
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	source := database.Migrations()

	switch *direction {
	case "status":
		records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
		if err != nil {
			log.Fatalf("Failed to read migration records: %v", err)
		}
		for _, r := range records {
			log.Printf("  %s applied at %s", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		log.Printf("📋 %d migration(s) applied", len(records))
		return
	case "up", "down":
	default:
		log.Fatalf("Unknown direction %q (want up, down or status)", *direction)
	}

	dir := migrate.Up
	if *direction == "down" {
		dir = migrate.Down
	}

	log.Printf("🔄 Applying migrations (%s) from %s/ directory...", *direction, database.MigrationsDir)
	n, err := migrate.ExecMax(sqlDB, "postgres", source, dir, *steps)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Successfully applied %d migration(s)!\n", n)
}
