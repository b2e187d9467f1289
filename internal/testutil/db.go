// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"recshelf/internal/database"
	"recshelf/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated, private in-memory sqlite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

var seq atomic.Uint64

func next() uint64 {
	return seq.Add(1)
}

// CreateUser inserts a user with a unique username and email. The stored hash
// is a placeholder; tests that log in should register through the service.
func CreateUser(t testing.TB, db *gorm.DB) *models.User {
	t.Helper()
	n := next()
	u := &models.User{
		Username:       fmt.Sprintf("user%05d", n),
		Email:          fmt.Sprintf("user%05d@example.com", n),
		HashedPassword: "not-a-real-hash",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateFictionType(t testing.TB, db *gorm.DB, name string) *models.FictionType {
	t.Helper()
	ft := &models.FictionType{Name: name, Slug: fmt.Sprintf("%s-%d", "type", next())}
	require.NoError(t, db.Create(ft).Error)
	return ft
}

func CreateTag(t testing.TB, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateRecommendation inserts a recommendation and links the given tags.
func CreateRecommendation(t testing.TB, db *gorm.DB, title string, userID, fictionTypeID uint, tagIDs ...uint) *models.Recommendation {
	t.Helper()
	rec := &models.Recommendation{
		Title:            title,
		ShortDescription: "short description of " + title,
		Opinion:          "opinion about " + title,
		Published:        time.Now().UTC(),
		UserID:           userID,
		FictionTypeID:    fictionTypeID,
	}
	require.NoError(t, db.Omit("FictionType", "Tags").Create(rec).Error)
	for _, tagID := range tagIDs {
		require.NoError(t, db.Create(&models.RecommendationTag{RecommendationID: rec.ID, TagID: tagID}).Error)
	}
	return rec
}

// CreateComment inserts a comment with an explicit publication time.
func CreateComment(t testing.TB, db *gorm.DB, recommendationID, userID uint, content string, published time.Time) *models.Comment {
	t.Helper()
	c := &models.Comment{
		Content:          content,
		Published:        published.UTC(),
		UserID:           userID,
		RecommendationID: recommendationID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateReaction(t testing.TB, db *gorm.DB, recommendationID, userID uint, positive bool) *models.Reaction {
	t.Helper()
	r := &models.Reaction{IsPositive: positive, UserID: userID, RecommendationID: recommendationID}
	require.NoError(t, db.Create(r).Error)
	return r
}
