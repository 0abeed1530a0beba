package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/personafol/personafolio/internal/services"
	"github.com/personafol/personafolio/internal/types"
)

// LocalsSession is the context key the validated session claims live under.
const LocalsSession = "session"

// RequireRole validates the session and rejects requests whose operator does
// not hold one of the given roles.
func RequireRole(secret string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := sessionClaims(c, secret)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: err.Error(),
				Type:    "authorization",
			}
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Locals(LocalsSession, claims)
				return c.Next()
			}
		}

		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "insufficient role",
			Type:    "authorization",
		}
	}
}

// OptionalAuth attaches session claims when a valid token is present and
// passes the request through either way. Read handlers use it to decide
// whether drafts are visible.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := sessionClaims(c, secret); err == nil {
			c.Locals(LocalsSession, claims)
		}
		return c.Next()
	}
}

// Session returns the claims attached by RequireRole/OptionalAuth, or nil.
func Session(c *fiber.Ctx) *services.SessionClaims {
	claims, _ := c.Locals(LocalsSession).(*services.SessionClaims)
	return claims
}

// sessionClaims extracts and validates the token from the session cookie or
// an Authorization bearer header.
func sessionClaims(c *fiber.Ctx, secret string) (*services.SessionClaims, error) {
	token := c.Cookies(services.SessionCookie)
	if token == "" {
		auth := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return nil, &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "session cookie \"" + services.SessionCookie + "\" not found",
			Type:    "authorization",
		}
	}
	return services.ValidateToken(secret, token)
}
