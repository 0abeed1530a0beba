package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/services"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func createUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Role: role}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("Failed to set password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "admin@example.com", "a-strong-password", models.RoleAdmin)

	token, user, err := services.Login(db, testSecret, "admin@example.com", "a-strong-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a session token")
	}
	if user == nil || user.Email != "admin@example.com" {
		t.Fatalf("Expected the logged-in user back, got %+v", user)
	}

	claims, err := services.ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("Issued token failed validation: %v", err)
	}
	if claims.Email != "admin@example.com" || claims.Role != models.RoleAdmin {
		t.Errorf("Claims do not match user: %+v", claims)
	}
	if claims.UserID != user.ID {
		t.Errorf("Expected user id %d in claims, got %d", user.ID, claims.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "admin@example.com", "a-strong-password", models.RoleAdmin)

	_, _, err := services.Login(db, testSecret, "admin@example.com", "nope")
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := services.Login(db, testSecret, "ghost@example.com", "whatever")
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Errorf("Unknown email must look like bad credentials, got %v", err)
	}
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "admin@example.com", "a-strong-password", models.RoleAdmin)

	for i := 0; i < models.MaxLoginAttempts; i++ {
		_, _, err := services.Login(db, testSecret, "admin@example.com", "nope")
		if !errors.Is(err, services.ErrInvalidCredentials) {
			t.Fatalf("Attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// even the correct password is refused while locked
	_, _, err := services.Login(db, testSecret, "admin@example.com", "a-strong-password")
	if !errors.Is(err, services.ErrAccountLocked) {
		t.Errorf("Expected ErrAccountLocked, got %v", err)
	}
}

func TestLoginSuccessClearsFailureCount(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "admin@example.com", "a-strong-password", models.RoleAdmin)

	for i := 0; i < models.MaxLoginAttempts-1; i++ {
		_, _, _ = services.Login(db, testSecret, "admin@example.com", "nope")
	}
	if _, _, err := services.Login(db, testSecret, "admin@example.com", "a-strong-password"); err != nil {
		t.Fatalf("Login before lockout must succeed: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", "admin@example.com").First(&user).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if user.LoginAttempts != 0 {
		t.Errorf("Expected failure count reset, got %d", user.LoginAttempts)
	}
}

func TestLoginLockExpires(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "admin@example.com", "a-strong-password", models.RoleAdmin)

	expired := time.Now().Add(-time.Minute)
	if err := db.Model(user).Update("locked_until", &expired).Error; err != nil {
		t.Fatalf("Failed to set expired lock: %v", err)
	}

	if _, _, err := services.Login(db, testSecret, "admin@example.com", "a-strong-password"); err != nil {
		t.Errorf("Login after lock expiry must succeed, got %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "admin@example.com", "a-strong-password", models.RoleAdmin)

	token, _, err := services.Login(db, testSecret, "admin@example.com", "a-strong-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := services.ValidateToken("another-secret-entirely-32-chars", token); err == nil {
		t.Error("Token signed with a different secret must be rejected")
	}
	if _, err := services.ValidateToken(testSecret, token+"x"); err == nil {
		t.Error("Tampered token must be rejected")
	}
}

func TestIssueTokenExpiration(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleEditor}
	issued := time.Now()
	token, err := services.IssueToken(testSecret, user, issued)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	claims, err := services.ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	wantExp := issued.Add(services.TokenExpiration)
	if got := claims.ExpiresAt.Time; got.Unix() != wantExp.Unix() {
		t.Errorf("Expected expiry %v, got %v", wantExp, got)
	}
}
