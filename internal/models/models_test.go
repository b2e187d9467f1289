package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Unmarshal(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSet     bool
		wantNull    bool
		wantValue   string
		wantPresent bool
	}{
		{"absent", `{}`, false, false, "", false},
		{"explicit null", `{"username": null}`, true, true, "", false},
		{"value", `{"username": "someone"}`, true, false, "someone", true},
		{"empty string", `{"username": ""}`, true, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u UserUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.wantSet, u.Username.Set)
			assert.Equal(t, tt.wantNull, u.Username.Null)
			assert.Equal(t, tt.wantValue, u.Username.Value)
			assert.Equal(t, tt.wantPresent, u.Username.Present())
			assert.False(t, u.Email.Set)
		})
	}
}

func TestOptional_WrongType(t *testing.T) {
	var u RecommendationUpdate
	err := json.Unmarshal([]byte(`{"tag_ids": "nope"}`), &u)
	assert.Error(t, err)
}

func TestOptional_Slice(t *testing.T) {
	var u RecommendationUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"tag_ids": [3, 1]}`), &u))
	assert.True(t, u.TagIDs.Present())
	assert.Equal(t, []uint{3, 1}, u.TagIDs.Value)
	assert.False(t, u.Title.Set)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Recommendation with id 42 was not found",
		NewNotFoundError("Recommendation", 42).Error())
	assert.Equal(t, "Comment with id 3 for recommendation with id 9 was not found",
		NewScopedNotFoundError("Comment", 3, "recommendation", 9).Error())

	wrapped := fmt.Errorf("create user: %w", NewConflictError("Duplicate username", errors.New("23505")))
	assert.True(t, IsCode(wrapped, CodeConflict))
	assert.False(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeConflict))
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		err        error
		wantBody   string
		wantHeader string
	}{
		{
			name:     "not found",
			status:   fiber.StatusNotFound,
			err:      NewNotFoundError("Tag", 1),
			wantBody: `{"detail":"Tag with id 1 was not found","code":"NOT_FOUND"}`,
		},
		{
			name:       "unauthorized carries bearer challenge",
			status:     fiber.StatusUnauthorized,
			err:        NewUnauthorizedError("Not authenticated"),
			wantBody:   `{"detail":"Not authenticated","code":"UNAUTHORIZED"}`,
			wantHeader: "Bearer",
		},
		{
			name:     "internal cause is hidden",
			status:   fiber.StatusInternalServerError,
			err:      WrapInternal(errors.New("pq: connection refused")),
			wantBody: `{"detail":"Internal server error","code":"INTERNAL_ERROR"}`,
		},
		{
			name:     "plain error at 500 is hidden",
			status:   fiber.StatusInternalServerError,
			err:      errors.New("boom"),
			wantBody: `{"detail":"Internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, tt.status, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
			assert.Equal(t, tt.wantHeader, resp.Header.Get("WWW-Authenticate"))
		})
	}
}
