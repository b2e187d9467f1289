package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recshelf/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"commentId", "comment ID"},
		{"fictionTypeId", "fiction type ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- statusFor ---

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"conflict", models.NewConflictError("dup", nil), http.StatusBadRequest},
		{"not found", models.NewNotFoundError("Tag", 1), http.StatusNotFound},
		{"unauthorized", models.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"forbidden", models.NewForbiddenError("no"), http.StatusForbidden},
		{"rate limited", models.NewRateLimitError("slow"), http.StatusTooManyRequests},
		{"internal", models.WrapInternal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

// --- parseID ---

func TestParseID_ValidID(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParseID_Rejected(t *testing.T) {
	tests := []struct {
		param       string
		value       string
		expectedMsg string
	}{
		{"id", "abc", "Invalid ID"},
		{"id", "0", "Invalid ID"},
		{"id", "-3", "Invalid ID"},
		{"commentId", "abc", "Invalid comment ID"},
	}
	for _, tt := range tests {
		t.Run(tt.param+"="+tt.value, func(t *testing.T) {
			app := fiber.New()
			s := &Server{}
			app.Get("/items/:"+tt.param, func(c *fiber.Ctx) error {
				_, _ = s.parseID(c, tt.param)
				return nil
			})

			req := httptest.NewRequest(http.MethodGet, "/items/"+tt.value, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedMsg, body["detail"])
		})
	}
}

// --- parsePatch ---

func TestParsePatch(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantSet   bool
		wantNull  bool
		wantValue string
	}{
		{name: "empty body", body: "", wantCode: http.StatusOK},
		{name: "absent key", body: `{}`, wantCode: http.StatusOK},
		{name: "explicit null", body: `{"username": null}`, wantCode: http.StatusOK, wantSet: true, wantNull: true},
		{name: "value", body: `{"username": "alice"}`, wantCode: http.StatusOK, wantSet: true, wantValue: "alice"},
		{name: "malformed", body: `{"username":`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Patch("/", func(c *fiber.Ctx) error {
				var in models.UserUpdate
				if err := parsePatch(c, &in); err != nil {
					return nil
				}
				return c.JSON(fiber.Map{
					"set":   in.Username.Set,
					"null":  in.Username.Null,
					"value": in.Username.Value,
				})
			})

			req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantCode != http.StatusOK {
				return
			}
			var body struct {
				Set   bool   `json:"set"`
				Null  bool   `json:"null"`
				Value string `json:"value"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantSet, body.Set)
			assert.Equal(t, tt.wantNull, body.Null)
			assert.Equal(t, tt.wantValue, body.Value)
		})
	}
}

// --- query helpers ---

func TestQueryHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		b, err := queryBool(c, "flag")
		if err != nil {
			return respond(c, err)
		}
		n, err := queryInt(c, "n")
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(fiber.Map{"flag": b, "n": n})
	})

	tests := []struct {
		query    string
		wantCode int
		wantBody string
	}{
		{"", http.StatusOK, `{"flag":null,"n":null}`},
		{"?flag=true&n=3", http.StatusOK, `{"flag":true,"n":3}`},
		{"?flag=maybe", http.StatusBadRequest, ""},
		{"?n=ten", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantBody != "" {
				var got map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				var want map[string]any
				require.NoError(t, json.Unmarshal([]byte(tt.wantBody), &want))
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(tt.header))
		})
	}
}
