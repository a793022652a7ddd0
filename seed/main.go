package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orydia-app/orydia_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, achievements, rewards, books")
		dsn      = flag.String("dsn", "", "Database DSN (overrides DATABASE_DSN env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	databaseDSN := *dsn
	if databaseDSN == "" {
		databaseDSN = os.Getenv("DATABASE_DSN")
		if databaseDSN == "" {
			databaseDSN = "host=localhost user=orydia password=orydia dbname=orydia port=5432 sslmode=disable"
		}
	}

	db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database")

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "achievements":
		log.Println("Seeding achievements only...")
		if err := mainSeeder.SeedAchievementsOnly(); err != nil {
			log.Fatalf("Failed to seed achievements: %v", err)
		}
	case "rewards":
		log.Println("Seeding reward tables only...")
		if err := mainSeeder.SeedRewardsOnly(); err != nil {
			log.Fatalf("Failed to seed reward tables: %v", err)
		}
	case "books":
		log.Println("Seeding books only...")
		if err := mainSeeder.SeedBooksOnly(); err != nil {
			log.Fatalf("Failed to seed books: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'achievements', 'rewards', or 'books'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func showHelp() {
	log.Println(`
Database Seeding Tool for the Orydia API

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, achievements, rewards, books
  -dsn string
        Database DSN (overrides DATABASE_DSN environment variable)
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Seed only reward tables
  go run seed/main.go -type=rewards

Environment Variables:
  DATABASE_DSN - Postgres connection string`)
}
