package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/personafol/personafolio/internal/models"
	"gorm.io/gorm"
)

// TokenExpiration is the lifetime of a session token.
const TokenExpiration = 24 * time.Hour

// SessionCookie is the cookie the session token travels in.
const SessionCookie = "folio_session"

// ErrInvalidCredentials covers both unknown emails and wrong passwords so the
// login response doesn't reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountLocked is returned while a lockout window is active.
var ErrAccountLocked = errors.New("account locked, try again later")

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID uint64 `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies an operator's credentials and issues a session token.
// Five consecutive failures lock the account for ten minutes.
func Login(db *gorm.DB, secret, email, password string) (string, *models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	now := time.Now()
	if user.Locked(now) {
		return "", nil, ErrAccountLocked
	}

	if !user.CheckPassword(password) {
		user.LoginAttempts++
		if user.LoginAttempts >= models.MaxLoginAttempts {
			until := now.Add(models.LockDuration)
			user.LockedUntil = &until
			user.LoginAttempts = 0
		}
		if err := db.Save(&user).Error; err != nil {
			return "", nil, err
		}
		return "", nil, ErrInvalidCredentials
	}

	// Successful login clears any stale lockout state
	if user.LoginAttempts != 0 || user.LockedUntil != nil {
		user.LoginAttempts = 0
		user.LockedUntil = nil
		if err := db.Save(&user).Error; err != nil {
			return "", nil, err
		}
	}

	token, err := IssueToken(secret, &user, now)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// IssueToken signs a session token for the given operator.
func IssueToken(secret string, user *models.User, now time.Time) (string, error) {
	claims := SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken parses and verifies a session token.
func ValidateToken(secret, token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("session is not valid")
	}
	return claims, nil
}
