package main

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/schema"
	"gorm.io/gorm"
)

func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	err = db.AutoMigrate(
		&models.User{},
		&models.Media{},
		&models.Persona{},
		&models.Skill{},
		&models.Project{},
		&models.GalleryItem{},
		&models.Experience{},
		&models.ContentEntry{},
		&models.Certification{},
	)
	if err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var ddl string
		db.Raw(fmt.Sprintf("SELECT sql FROM sqlite_master WHERE name='%s'", table)).Scan(&ddl)
		fmt.Println(ddl)
	}

	// And the declared collection registry alongside
	registry := schema.Default()
	for _, slug := range registry.Slugs() {
		coll := registry.Lookup(slug)
		fmt.Printf("\n=== Collection: %s ===\n", slug)
		for _, f := range coll.Fields {
			required := ""
			if f.Required {
				required = " required"
			}
			fmt.Printf("  %-24s %s%s\n", f.Name, f.Type, required)
		}
	}
}
