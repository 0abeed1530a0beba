package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/config"
	"github.com/personafol/personafolio/internal/handlers"
	"github.com/personafol/personafolio/internal/middleware"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/schema"
	"github.com/personafol/personafolio/internal/services"
	"github.com/personafol/personafolio/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testErrorHandler mirrors the server's global error handler for middleware
// failures surfaced as CustomError values
func testErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{"status": code, "message": message, "ok": false})
}

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

func testAccessor(t *testing.T, db *gorm.DB) *cms.Accessor {
	cfg := &config.Config{Secret: testSecret, UploadDir: t.TempDir()}
	return cms.NewAccessor(func() (*cms.Client, error) {
		return &cms.Client{DB: db, Schema: schema.Default(), Config: cfg}, nil
	})
}

// setupAPIApp wires the collection routes the way the server does
func setupAPIApp(t *testing.T, db *gorm.DB) *fiber.App {
	accessor := testAccessor(t, db)
	handler := &handlers.APIHandler{CMS: accessor}

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	api := app.Group("/api")
	api.Get("/:collection", middleware.OptionalAuth(testSecret), handler.ListDocs)
	api.Get("/:collection/:id", middleware.OptionalAuth(testSecret), handler.GetDoc)
	api.Post("/:collection", middleware.RequireRole(testSecret, models.RoleAdmin, models.RoleEditor), handler.CreateDoc)
	api.Patch("/:collection/:id", middleware.RequireRole(testSecret, models.RoleAdmin, models.RoleEditor), handler.UpdateDoc)
	api.Delete("/:collection/:id", middleware.RequireRole(testSecret, models.RoleAdmin, models.RoleEditor), handler.DeleteDoc)
	return app
}

func sessionToken(t *testing.T, role string) string {
	t.Helper()
	token, err := services.IssueToken(testSecret, &models.User{ID: 99, Email: "op@example.com", Role: role}, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

func TestListDocsPublicScoping(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	published := models.Project{Title: "Public", Excerpt: "x", Body: "y", Status: models.StatusPublished}
	draft := models.Project{Title: "Private", Excerpt: "x", Body: "y", Status: models.StatusDraft}
	if err := db.Create(&published).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	// anonymous reader sees only the published project
	resp, err := app.Test(httptest.NewRequest("GET", "/api/projects", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["totalDocs"].(float64) != 1 {
		t.Errorf("Expected 1 public doc, got %v", result["totalDocs"])
	}

	// an editor session sees drafts too
	authed := httptest.NewRequest("GET", "/api/projects", nil)
	authed.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))
	resp, err = app.Test(authed)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["totalDocs"].(float64) != 2 {
		t.Errorf("Expected 2 docs for editor, got %v", result["totalDocs"])
	}
}

func TestGetDocUnknownCollection(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/widgets", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for unknown collection, got %d", resp.StatusCode)
	}
}

func TestUsersRequireAuthEvenForReads(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/users", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403 for anonymous user listing, got %d", resp.StatusCode)
	}
}

func TestCreateDocRequiresSession(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	body, _ := json.Marshal(map[string]interface{}{"title": "Nope"})
	req := httptest.NewRequest("POST", "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403 for anonymous create, got %d", resp.StatusCode)
	}
}

func TestCreateDocWithRelations(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	persona := models.Persona{Title: "Dev", Slug: "dev", IsActive: true}
	if err := db.Create(&persona).Error; err != nil {
		t.Fatalf("Failed to create persona: %v", err)
	}
	skill := models.Skill{Name: "Go", Category: models.CategoryLanguage, IsActive: true}
	if err := db.Create(&skill).Error; err != nil {
		t.Fatalf("Failed to create skill: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Made Via API",
		"excerpt":  "short",
		"body":     "long form",
		"status":   "published",
		"personas": []uint64{persona.ID},
		"skills":   []uint64{skill.ID},
	})
	req := httptest.NewRequest("POST", "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var created models.Project
	if err := db.Preload("Personas").Preload("Skills").Where("slug = ?", "made-via-api").First(&created).Error; err != nil {
		t.Fatalf("Created project not found: %v", err)
	}
	if len(created.Personas) != 1 || created.Personas[0].ID != persona.ID {
		t.Errorf("Expected persona relation, got %+v", created.Personas)
	}
	if len(created.Skills) != 1 || created.Skills[0].ID != skill.ID {
		t.Errorf("Expected skill relation, got %+v", created.Skills)
	}
	if created.PublishedAt == nil {
		t.Error("Publishing through the API must stamp publishedAt")
	}
}

func TestCreateDocValidation(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	// missing required fields
	body, _ := json.Marshal(map[string]interface{}{"title": "No Body"})
	req := httptest.NewRequest("POST", "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for invalid body, got %d", resp.StatusCode)
	}

	// select value outside the declared options
	body, _ = json.Marshal(map[string]interface{}{
		"title":    "Bad Status",
		"excerpt":  "x",
		"body":     "y",
		"status":   "live",
		"personas": []uint64{1},
	})
	req = httptest.NewRequest("POST", "/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))

	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for undeclared select value, got %d", resp.StatusCode)
	}
}

func TestUpdateDocReplacesRelations(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	devPersona := models.Persona{Title: "Dev", Slug: "dev", IsActive: true}
	secPersona := models.Persona{Title: "Sec", Slug: "sec", IsActive: true}
	if err := db.Create(&devPersona).Error; err != nil {
		t.Fatalf("Failed to create persona: %v", err)
	}
	if err := db.Create(&secPersona).Error; err != nil {
		t.Fatalf("Failed to create persona: %v", err)
	}

	project := models.Project{
		Title: "Retarget", Excerpt: "x", Body: "y",
		Status: models.StatusPublished, Personas: []models.Persona{devPersona},
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	// ids arrive as strings from some authoring clients
	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Retargeted",
		"personas": []string{strconv.FormatUint(secPersona.ID, 10)},
	})
	req := httptest.NewRequest("PATCH", "/api/projects/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var updated models.Project
	if err := db.Preload("Personas").First(&updated, project.ID).Error; err != nil {
		t.Fatalf("Failed to reload project: %v", err)
	}
	if updated.Title != "Retargeted" {
		t.Errorf("Expected updated title, got %q", updated.Title)
	}
	if len(updated.Personas) != 1 || updated.Personas[0].ID != secPersona.ID {
		t.Errorf("Expected persona replaced, got %+v", updated.Personas)
	}
}

func TestDeleteDoc(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	entry := models.ContentEntry{Title: "Ephemeral", Body: "b"}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/api/content/1", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.ContentEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected entry deleted, %d remain", count)
	}

	// deleting again is a 404
	req = httptest.NewRequest("DELETE", "/api/content/1", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for repeated delete, got %d", resp.StatusCode)
	}
}

func TestUsersCollectionAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	app := setupAPIApp(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"email":    "new@example.com",
		"password": "a-strong-password",
		"role":     models.RoleEditor,
	})

	// editor cannot create users
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleEditor))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403 for editor creating user, got %d", resp.StatusCode)
	}

	// admin can
	req = httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleAdmin))
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 for admin creating user, got %d", resp.StatusCode)
	}

	var user models.User
	if err := db.Where("email = ?", "new@example.com").First(&user).Error; err != nil {
		t.Fatalf("Created user not found: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "a-strong-password" {
		t.Error("User password must be stored hashed")
	}
	if !user.CheckPassword("a-strong-password") {
		t.Error("Stored hash does not verify the submitted password")
	}
}
