package validation

import (
	"strings"
	"testing"

	"recshelf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"UPPER@EXAMPLE.COM", true},
		{"user@example", false},
		{"user@example.c", false},
		{"user@example.toolongtld", false},
		{"prefix user@example.com", false},
		{"user@example.com trailing", false},
		{".user@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmail(tt.email))
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "someone", false},
		{"Exactly Min Length", "abcde", false},
		{"Too Short", "abcd", true},
		{"Exactly Max Length", strings.Repeat("a", 255), false},
		{"Too Long", strings.Repeat("a", 256), true},
		{"Multibyte counts runes", "ÅÅÅÅÅ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.True(t, models.IsCode(err, models.CodeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail("a@b."))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@example.com"))

	err := ValidateEmail("not-an-email")
	require.Error(t, err)
	assert.Equal(t, "Not valid email", err.Error())
}

func TestStruct(t *testing.T) {
	t.Parallel()
	yes := true

	tests := []struct {
		name    string
		input   any
		wantMsg string
	}{
		{
			name:  "valid registration",
			input: &models.UserCreate{Username: "someone", Email: "someone@example.com", Password: "34somepassword34"},
		},
		{
			name:    "short username",
			input:   &models.UserCreate{Username: "abc", Email: "someone@example.com", Password: "34somepassword34"},
			wantMsg: "username must be at least 5 characters",
		},
		{
			name:    "bad email",
			input:   &models.UserCreate{Username: "someone", Email: "someone.example.com", Password: "34somepassword34"},
			wantMsg: "Not valid email",
		},
		{
			name:    "missing password",
			input:   &models.UserCreate{Username: "someone", Email: "someone@example.com"},
			wantMsg: "password is required",
		},
		{
			name:    "recommendation without tags",
			input:   &models.RecommendationCreate{Title: "Dune", ShortDescription: "s", Opinion: "o", FictionTypeID: 1, TagIDs: []uint{}},
			wantMsg: "tag_ids must contain at least 1 item(s)",
		},
		{
			name:    "recommendation title too long",
			input:   &models.RecommendationCreate{Title: strings.Repeat("t", 256), ShortDescription: "s", Opinion: "o", FictionTypeID: 1, TagIDs: []uint{1}},
			wantMsg: "title must not exceed 255 characters",
		},
		{
			name:    "bad slug",
			input:   &models.FictionTypeCreate{Name: "Movie", Slug: "Not A Slug"},
			wantMsg: "slug must contain only lowercase letters, digits and single hyphens",
		},
		{
			name:  "false reaction is still present",
			input: &models.ReactionCreate{IsPositive: new(bool)},
		},
		{
			name:  "positive reaction",
			input: &models.ReactionCreate{IsPositive: &yes},
		},
		{
			name:    "missing reaction value",
			input:   &models.ReactionCreate{},
			wantMsg: "is_positive is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, models.IsCode(err, models.CodeValidation))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
