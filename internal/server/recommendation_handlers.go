package server

import (
	"recshelf/internal/middleware"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListRecommendations handles GET /recommendations?fiction_type=<slug>
func (s *Server) ListRecommendations(c *fiber.Ctx) error {
	recs, err := s.recommendationService.List(c.UserContext(), c.Query("fiction_type"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(recs)
}

// GetRecommendation handles GET /recommendations/:id
func (s *Server) GetRecommendation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	rec, err := s.recommendationService.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(rec)
}

// CreateRecommendation handles POST /recommendations
func (s *Server) CreateRecommendation(c *fiber.Ctx) error {
	var req models.RecommendationCreate
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	rec, err := s.recommendationService.Create(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respond(c, err)
	}

	middleware.RecordEvent("recommendation", "create")
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// UpdateRecommendation handles PATCH /recommendations/:id
func (s *Server) UpdateRecommendation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req models.RecommendationUpdate
	if err := parsePatch(c, &req); err != nil {
		return nil
	}

	rec, err := s.recommendationService.Update(c.UserContext(), currentUserID(c), id, req)
	if err != nil {
		return respond(c, err)
	}

	middleware.RecordEvent("recommendation", "update")
	return c.JSON(rec)
}

// DeleteRecommendation handles DELETE /recommendations/:id
func (s *Server) DeleteRecommendation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.recommendationService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respond(c, err)
	}
	middleware.RecordEvent("recommendation", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}
