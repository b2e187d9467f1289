package server

import (
	"recshelf/internal/middleware"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /auth/register. Duplicates answer 401.
func (s *Server) Register(c *fiber.Ctx) error {
	var req models.UserCreate
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), req)
	if err != nil {
		if models.IsCode(err, models.CodeConflict) {
			return respondWithStatus(c, fiber.StatusUnauthorized, err)
		}
		return respond(c, err)
	}

	middleware.RecordEvent("user", "register")
	return c.Status(fiber.StatusCreated).JSON(user)
}

// tokenRequest accepts the OAuth2 password form as well as JSON.
type tokenRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Token handles POST /auth/token
func (s *Server) Token(c *fiber.Ctx) error {
	var req tokenRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username and password are required"))
	}

	token, err := s.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(token)
}

// Logout handles POST /auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.UserContext(), currentClaims(c)); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMe handles GET /auth/users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// UpdateMe handles PATCH /auth/users/me/update
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var req models.UserUpdate
	if err := parsePatch(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateCredentials(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(user)
}

// DeleteMe handles DELETE /auth/users/me
func (s *Server) DeleteMe(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respond(c, err)
	}
	// The account is gone; its token should not outlive it.
	_ = s.authService.Logout(c.UserContext(), currentClaims(c))
	middleware.RecordEvent("user", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}
