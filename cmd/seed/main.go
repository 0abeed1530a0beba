package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/personafol/personafolio/internal/config"
	"github.com/personafol/personafolio/internal/database"
	"github.com/personafol/personafolio/internal/services"
)

// Seeds a fresh database with the starter personas, skills, projects, and the
// initial admin user. Safe to re-run: an already seeded database is left alone.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seed complete")
}
