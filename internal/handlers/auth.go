package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/middleware"
	"github.com/personafol/personafolio/internal/services"
	"github.com/personafol/personafolio/internal/utils"
)

// AuthHandler serves the user session routes under /api/users.
type AuthHandler struct {
	CMS *cms.Accessor
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/users/login
// @Summary Log a user in
// @Description Verify credentials and set the session cookie; repeated failures lock the account
// @Tags Users
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /users/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, "Service unavailable", fiber.StatusServiceUnavailable, "cms.init")
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}
	if req.Email == "" || req.Password == "" {
		return utils.ErrorResponse(c, "Email and password are required", fiber.StatusBadRequest, "data.validation.input")
	}

	token, user, err := services.Login(client.DB, client.Config.Secret, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccountLocked) {
			return utils.ErrorResponse(c, "Account locked, try again later", fiber.StatusLocked, "users.login")
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized, "users.login")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "users.login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(services.TokenExpiration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Authentication successful",
		"token":   token,
		"exp":     time.Now().Add(services.TokenExpiration).Unix(),
		"user":    user,
	})
}

// Logout handles POST /api/users/logout
// @Summary Log the current user out
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/users/me
// @Summary Describe the current session
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if sess == nil {
		return utils.ErrorResponse(c, "Not authenticated", fiber.StatusUnauthorized, "users.me")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    sess.UserID,
			"email": sess.Email,
			"role":  sess.Role,
		},
	})
}
