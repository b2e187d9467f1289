package server

import (
	"recshelf/internal/middleware"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// React handles POST /recommendations/:id/reactions. A first reaction
// answers 201, changing an existing one answers 200.
func (s *Server) React(c *fiber.Ctx) error {
	recID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req models.ReactionCreate
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	reaction, created, err := s.reactionService.React(c.UserContext(), currentUserID(c), recID, req)
	if err != nil {
		return respond(c, err)
	}

	if created {
		middleware.RecordEvent("reaction", "create")
		return c.Status(fiber.StatusCreated).JSON(reaction)
	}
	middleware.RecordEvent("reaction", "update")
	return c.JSON(reaction)
}

// ListReactions handles GET /recommendations/:id/reactions?is_positive=
func (s *Server) ListReactions(c *fiber.Ctx) error {
	recID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	positive, err := queryBool(c, "is_positive")
	if err != nil {
		return respond(c, err)
	}

	reactions, err := s.reactionService.List(c.UserContext(), recID, positive)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(reactions)
}

func (s *Server) GetMyReaction(c *fiber.Ctx) error {
	recID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	reaction, err := s.reactionService.Mine(c.UserContext(), currentUserID(c), recID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(reaction)
}

func (s *Server) DeleteMyReaction(c *fiber.Ctx) error {
	recID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reactionService.DeleteMine(c.UserContext(), currentUserID(c), recID); err != nil {
		return respond(c, err)
	}
	middleware.RecordEvent("reaction", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}
