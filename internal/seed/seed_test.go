package seed

import (
	"context"
	"testing"

	"recshelf/internal/auth"
	"recshelf/internal/models"
	"recshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_PopulatesEveryTable(t *testing.T) {
	db := testutil.NewDB(t)
	opts := Options{
		NumUsers:           5,
		NumTags:            4,
		NumRecommendations: 8,
		MaxComments:        3,
		SkipBcrypt:         true,
		RandSeed:           42,
	}

	sum, err := Seed(context.Background(), db, opts)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.FictionTypes)
	assert.Equal(t, 5, sum.Users)
	assert.Equal(t, 4, sum.Tags)
	assert.Equal(t, 8, sum.Recommendations)

	var n int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&n).Error)
	assert.Equal(t, int64(sum.Comments), n)
	require.NoError(t, db.Model(&models.Reaction{}).Count(&n).Error)
	assert.Equal(t, int64(sum.Reactions), n)

	// every recommendation carries at least one tag
	var untagged int64
	require.NoError(t, db.Model(&models.Recommendation{}).
		Where("id NOT IN (?)", db.Model(&models.RecommendationTag{}).Select("recommendation_id")).
		Count(&untagged).Error)
	assert.Zero(t, untagged)
}

func TestSeed_IsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)
	opts := Options{NumUsers: 3, NumTags: 2, NumRecommendations: 2, SkipBcrypt: true, ShouldClean: true}

	_, err := Seed(context.Background(), db, opts)
	require.NoError(t, err)
	sum, err := Seed(context.Background(), db, opts)
	require.NoError(t, err)

	assert.Zero(t, sum.FictionTypes, "fiction types are only created once")

	var users, types int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.FictionType{}).Count(&types).Error)
	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(len(FictionTypes())), types)
}

func TestFactory_UsersLogIn(t *testing.T) {
	db := testutil.NewDB(t)
	f, err := NewFactory(db, Options{RandSeed: 7})
	require.NoError(t, err)

	u, err := f.CreateUser()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(u.Username), 5)
	assert.True(t, auth.CheckPassword(u.HashedPassword, DemoPassword))

	other := f.BuildUser()
	assert.NotEqual(t, u.Username, other.Username)
}

func TestFactory_CommentsFollowRecommendation(t *testing.T) {
	db := testutil.NewDB(t)
	f, err := NewFactory(db, Options{SkipBcrypt: true, MaxDays: 10})
	require.NoError(t, err)

	u, err := f.CreateUser()
	require.NoError(t, err)
	ft := testutil.CreateFictionType(t, db, "Book")
	rec, err := f.CreateRecommendation(u, ft, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		c, err := f.CreateComment(u, rec)
		require.NoError(t, err)
		assert.False(t, c.Published.Before(rec.Published))
	}
}
