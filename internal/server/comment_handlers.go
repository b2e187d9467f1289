package server

import (
	"recshelf/internal/middleware"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// commentIDs parses both path ids, writing a 400 on failure.
func (s *Server) commentIDs(c *fiber.Ctx) (recID, commentID uint, err error) {
	if recID, err = s.parseID(c, "id"); err != nil {
		return 0, 0, err
	}
	if commentID, err = s.parseID(c, "commentId"); err != nil {
		return 0, 0, err
	}
	return recID, commentID, nil
}

// CreateComment handles POST /recommendations/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	recID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req models.CommentCreate
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), currentUserID(c), recID, req)
	if err != nil {
		return respond(c, err)
	}

	middleware.RecordEvent("comment", "create")
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments handles GET /recommendations/:id/comments with
// by_published_date_descending, offset and limit query parameters.
func (s *Server) ListComments(c *fiber.Ctx) error {
	recID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	desc, err := queryBool(c, "by_published_date_descending")
	if err != nil {
		return respond(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return respond(c, err)
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return respond(c, err)
	}

	q := models.ListCommentsQuery{Limit: limit}
	if desc != nil {
		q.Descending = *desc
	}
	if offset != nil {
		q.Offset = *offset
	}

	comments, err := s.commentService.ListComments(c.UserContext(), recID, q)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comments)
}

// GetComment handles GET /recommendations/:id/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	recID, commentID, err := s.commentIDs(c)
	if err != nil {
		return nil
	}
	comment, err := s.commentService.GetComment(c.UserContext(), recID, commentID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT /recommendations/:id/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	recID, commentID, err := s.commentIDs(c)
	if err != nil {
		return nil
	}
	var req models.CommentUpdate
	if err := parsePatch(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), currentUserID(c), recID, commentID, req)
	if err != nil {
		return respond(c, err)
	}

	middleware.RecordEvent("comment", "update")
	return c.JSON(comment)
}

// DeleteComment handles DELETE /recommendations/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	recID, commentID, err := s.commentIDs(c)
	if err != nil {
		return nil
	}
	if err := s.commentService.DeleteComment(c.UserContext(), currentUserID(c), recID, commentID); err != nil {
		return respond(c, err)
	}
	middleware.RecordEvent("comment", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}
