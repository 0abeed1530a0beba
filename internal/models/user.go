package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Operator roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Account lockout policy
const (
	MaxLoginAttempts = 5
	LockDuration     = 10 * time.Minute
)

// User is a CMS operator. All writes to the other collections are gated by
// the operator's role.
type User struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	Role          string     `gorm:"size:32;not null;default:admin" json:"role"`
	Name          string     `gorm:"size:255" json:"name,omitempty"`
	LoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil   *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Locked reports whether the account is currently locked out.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
