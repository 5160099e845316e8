package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"filebox/internal/service"
)

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body RegisterRequest true "account details"
// @Success      201 {object} model.PublicUser
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "Email and password are required")
		}

		user, err := svc.Register(c.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, service.ErrUserExists) {
				return writeError(c, fiber.StatusConflict, "User already exists")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to register user")
		}

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login exchanges credentials for a bearer token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "credentials"
// @Success      200 {object} service.LoginResult
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "Email and password are required")
		}

		res, err := svc.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				// Same message for unknown email and wrong password.
				return writeError(c, fiber.StatusUnauthorized, "Invalid credentials")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to log in")
		}

		return c.JSON(res)
	}
}
