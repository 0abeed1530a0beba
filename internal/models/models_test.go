package models_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/personafol/personafolio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

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
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestProjectSlugDerivedFromTitle(t *testing.T) {
	db := setupTestDB(t)

	project := models.Project{
		Title:   "My Great Project!",
		Excerpt: "x",
		Body:    "y",
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if project.Slug != "my-great-project" {
		t.Errorf("Expected derived slug 'my-great-project', got %q", project.Slug)
	}
}

func TestProjectExplicitSlugNormalized(t *testing.T) {
	db := setupTestDB(t)

	project := models.Project{
		Title:   "Ignored Title",
		Slug:    "Custom Slug Here",
		Excerpt: "x",
		Body:    "y",
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if project.Slug != "custom-slug-here" {
		t.Errorf("Expected normalized slug 'custom-slug-here', got %q", project.Slug)
	}
}

func TestProjectPublishStampLifecycle(t *testing.T) {
	db := setupTestDB(t)

	// created as draft: no stamp
	project := models.Project{Title: "Lifecycle", Excerpt: "x", Body: "y", Status: models.StatusDraft}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if project.PublishedAt != nil {
		t.Fatal("Draft project must not carry a publish stamp")
	}

	// first publish: stamped
	project.Status = models.StatusPublished
	if err := db.Save(&project).Error; err != nil {
		t.Fatalf("Failed to publish project: %v", err)
	}
	if project.PublishedAt == nil {
		t.Fatal("Published project must carry a publish stamp")
	}
	stamp := *project.PublishedAt

	// later edits keep the original stamp
	time.Sleep(5 * time.Millisecond)
	project.Title = "Lifecycle v2"
	if err := db.Save(&project).Error; err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}
	if project.PublishedAt == nil || !project.PublishedAt.Equal(stamp) {
		t.Errorf("Publish stamp changed on edit: was %v, now %v", stamp, project.PublishedAt)
	}
}

func TestContentReadTimeDerived(t *testing.T) {
	db := setupTestDB(t)

	entry := models.ContentEntry{Title: "Quick Note", Body: "just a few words here"}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if entry.ReadTime != 1 {
		t.Errorf("Expected read time 1, got %d", entry.ReadTime)
	}

	// an explicit read time is left alone
	explicit := models.ContentEntry{Title: "Estimated", Body: "short", ReadTime: 7}
	if err := db.Create(&explicit).Error; err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if explicit.ReadTime != 7 {
		t.Errorf("Expected explicit read time 7, got %d", explicit.ReadTime)
	}
}

func TestUserPasswordHashing(t *testing.T) {
	user := models.User{Email: "a@b.c", Role: models.RoleEditor}
	if err := user.SetPassword("correct horse battery staple"); err != nil {
		t.Fatalf("Failed to set password: %v", err)
	}
	if user.PasswordHash == "correct horse battery staple" {
		t.Fatal("Password must not be stored in the clear")
	}
	if !user.CheckPassword("correct horse battery staple") {
		t.Error("Correct password rejected")
	}
	if user.CheckPassword("wrong") {
		t.Error("Wrong password accepted")
	}
}

func TestUserLocked(t *testing.T) {
	now := time.Now()
	user := models.User{}
	if user.Locked(now) {
		t.Error("Fresh user must not be locked")
	}

	until := now.Add(5 * time.Minute)
	user.LockedUntil = &until
	if !user.Locked(now) {
		t.Error("User with a future lock must be locked")
	}
	if user.Locked(until.Add(time.Second)) {
		t.Error("Expired lock must not hold")
	}
}

func TestSkillRelatedSkillsRoundtrip(t *testing.T) {
	db := setupTestDB(t)

	golang := models.Skill{Name: "Go", Category: models.CategoryLanguage}
	docker := models.Skill{Name: "Docker", Category: models.CategoryTool}
	if err := db.Create(&golang).Error; err != nil {
		t.Fatalf("Failed to create skill: %v", err)
	}
	if err := db.Create(&docker).Error; err != nil {
		t.Fatalf("Failed to create skill: %v", err)
	}

	if err := db.Model(&golang).Association("RelatedSkills").Append(&docker); err != nil {
		t.Fatalf("Failed to relate skills: %v", err)
	}

	var loaded models.Skill
	if err := db.Preload("RelatedSkills").First(&loaded, golang.ID).Error; err != nil {
		t.Fatalf("Failed to reload skill: %v", err)
	}
	if len(loaded.RelatedSkills) != 1 || loaded.RelatedSkills[0].Name != "Docker" {
		t.Errorf("Expected Docker as related skill, got %+v", loaded.RelatedSkills)
	}
}
