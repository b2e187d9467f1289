package server

import (
	"context"
	"strings"

	"recshelf/internal/middleware"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the bearer token to a user and stores user, userID
// and claims in locals. It must run before any handler that needs them.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Not authenticated"))
		}

		user, claims, err := s.authService.CurrentUser(c.UserContext(), token)
		if err != nil {
			return respond(c, err)
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.Locals("claims", claims)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer" header.
// The scheme is case-insensitive.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
