package integration_test

import (
	"testing"
	"time"

	"github.com/personafol/personafolio/internal/config"
	"github.com/personafol/personafolio/internal/database"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/services"
	"github.com/personafol/personafolio/tests/helpers"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// TestWithMariaDB exercises the content service against a real MariaDB
// container: migrations, hooks, join tables, and the read paths.
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	mariadb, err := helpers.StartMariaDB(t)
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer mariadb.Terminate(t)

	cfg := &config.Config{
		Secret:            testSecret,
		DBType:            "mysql",
		DBHost:            mariadb.Host,
		DBPort:            mariadb.Port,
		DBDatabase:        mariadb.Name,
		DBUser:            mariadb.User,
		DBPassword:        mariadb.Password,
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("SeedAndReadBack", func(t *testing.T) {
		testSeedAndReadBack(t, db)
	})

	t.Run("PublishLifecycle", func(t *testing.T) {
		testPublishLifecycle(t, db)
	})

	t.Run("LoginLockout", func(t *testing.T) {
		testLoginLockout(t, db)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		result := services.HealthCheck(cfg, db)
		if result.Database != "ok" {
			t.Errorf("Expected database ok, got %q (%s)", result.Database, result.ErrorMessage)
		}
	})
}

func testSeedAndReadBack(t *testing.T, db *gorm.DB) {
	if err := services.Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	personas, err := services.ListPersonas(db)
	if err != nil {
		t.Fatalf("ListPersonas failed: %v", err)
	}
	if len(personas) == 0 {
		t.Fatal("No personas after seeding")
	}

	for _, persona := range personas {
		projects, err := services.ListProjectsForPersona(db, persona.ID, 0)
		if err != nil {
			t.Fatalf("ListProjectsForPersona(%s) failed: %v", persona.Slug, err)
		}
		for _, project := range projects {
			if project.Status != models.StatusPublished {
				t.Errorf("Unpublished project %q leaked into public listing", project.Slug)
			}
			if project.PublishedAt == nil {
				t.Errorf("Published project %q has no publish stamp", project.Slug)
			}
		}

		skills, err := services.ListSkillsForPersona(db, persona.ID)
		if err != nil {
			t.Fatalf("ListSkillsForPersona(%s) failed: %v", persona.Slug, err)
		}
		for i := 1; i < len(skills); i++ {
			if skills[i-1].Name > skills[i].Name {
				t.Errorf("Skills out of order: %q before %q", skills[i-1].Name, skills[i].Name)
			}
		}
	}
}

func testPublishLifecycle(t *testing.T, db *gorm.DB) {
	project := models.Project{
		Title:   "Integration Lifecycle",
		Excerpt: "x",
		Body:    "y",
		Status:  models.StatusDraft,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if project.Slug != "integration-lifecycle" {
		t.Errorf("Expected derived slug, got %q", project.Slug)
	}

	// invisible while draft
	loaded, err := services.GetProjectBySlug(db, project.Slug)
	if err != nil {
		t.Fatalf("GetProjectBySlug failed: %v", err)
	}
	if loaded != nil {
		t.Error("Draft project visible through the public read path")
	}

	// visible and stamped once published
	project.Status = models.StatusPublished
	if err := db.Save(&project).Error; err != nil {
		t.Fatalf("Failed to publish project: %v", err)
	}
	loaded, err = services.GetProjectBySlug(db, project.Slug)
	if err != nil {
		t.Fatalf("GetProjectBySlug failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Published project not visible")
	}
	if loaded.PublishedAt == nil {
		t.Fatal("Published project has no stamp")
	}
	stamp := *loaded.PublishedAt

	// the stamp survives a later edit, and the slug stays put
	loaded.Title = "Integration Lifecycle Revised"
	if err := db.Save(loaded).Error; err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}
	reloaded, err := services.GetProjectBySlug(db, "integration-lifecycle")
	if err != nil {
		t.Fatalf("GetProjectBySlug failed: %v", err)
	}
	if reloaded == nil {
		t.Fatal("Revised project not visible")
	}
	if reloaded.PublishedAt == nil || !reloaded.PublishedAt.Equal(stamp) {
		t.Errorf("Publish stamp changed on edit: was %v, now %v", stamp, reloaded.PublishedAt)
	}
}

func testLoginLockout(t *testing.T, db *gorm.DB) {
	operator := models.User{Email: "lockout@example.com", Role: models.RoleEditor}
	if err := operator.SetPassword("a-strong-password"); err != nil {
		t.Fatalf("Failed to set password: %v", err)
	}
	if err := db.Create(&operator).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for i := 0; i < models.MaxLoginAttempts; i++ {
		if _, _, err := services.Login(db, testSecret, "lockout@example.com", "wrong"); err == nil {
			t.Fatalf("Attempt %d unexpectedly succeeded", i+1)
		}
	}

	_, _, err := services.Login(db, testSecret, "lockout@example.com", "a-strong-password")
	if err != services.ErrAccountLocked {
		t.Errorf("Expected ErrAccountLocked, got %v", err)
	}
}
