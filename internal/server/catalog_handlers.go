package server

import (
	"recshelf/internal/middleware"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListFictionTypes handles GET /fiction-types
func (s *Server) ListFictionTypes(c *fiber.Ctx) error {
	out, err := s.catalogService.ListFictionTypes(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(out)
}

// CreateFictionType handles POST /fiction-types
func (s *Server) CreateFictionType(c *fiber.Ctx) error {
	var req models.FictionTypeCreate
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	ft, err := s.catalogService.CreateFictionType(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	middleware.RecordEvent("fiction_type", "create")
	return c.Status(fiber.StatusCreated).JSON(ft)
}

// DeleteFictionType handles DELETE /fiction-types/:id
func (s *Server) DeleteFictionType(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.catalogService.DeleteFictionType(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	middleware.RecordEvent("fiction_type", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTags handles GET /tags
func (s *Server) ListTags(c *fiber.Ctx) error {
	out, err := s.catalogService.ListTags(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(out)
}

// CreateTag handles POST /tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req models.TagCreate
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	tag, err := s.catalogService.CreateTag(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	middleware.RecordEvent("tag", "create")
	return c.Status(fiber.StatusCreated).JSON(tag)
}
