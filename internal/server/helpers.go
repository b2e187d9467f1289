package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"recshelf/internal/auth"
	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// statusFor maps the error taxonomy onto HTTP statuses. CONFLICT defaults
// to 400; endpoints that answer duplicates differently override it.
func statusFor(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeValidation, models.CodeConflict:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	case models.CodeRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// respond writes err with its default status, logging anything that maps
// to a 5xx.
func respond(c *fiber.Ctx, err error) error {
	return respondWithStatus(c, statusFor(err), err)
}

func respondWithStatus(c *fiber.Ctx, status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		logServerError(c, err)
	}
	return models.RespondWithError(c, status, err)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// parseBody decodes a create payload with the app's JSON codec.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// parsePatch decodes a partial update. It goes through encoding/json so
// every present key, null included, reaches Optional.UnmarshalJSON. An empty
// body decodes to the zero value.
func parsePatch(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, models.NewValidationError(key + " must be a boolean")
	}
	return &v, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, models.NewValidationError(key + " must be an integer")
	}
	return &v, nil
}

func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals("user").(*models.User)
	return u
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

func currentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals("claims").(*auth.Claims)
	return claims
}
