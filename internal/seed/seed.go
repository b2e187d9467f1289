package seed

import (
	"context"
	"fmt"

	"recshelf/internal/middleware"
	"recshelf/internal/models"
	"recshelf/internal/repository"
	"recshelf/internal/service"

	"gorm.io/gorm"
)

// Options configure a seeding run.
type Options struct {
	NumUsers           int
	NumTags            int
	NumRecommendations int
	MaxComments        int
	ShouldClean        bool
	SkipBcrypt         bool
	MaxDays            int
	RandSeed           int64
}

// DefaultOptions is a small but browsable data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:           20,
		NumTags:            12,
		NumRecommendations: 60,
		MaxComments:        6,
		ShouldClean:        true,
	}
}

// FictionTypes lists the reference fiction types every install starts with.
func FictionTypes() []models.FictionType {
	return []models.FictionType{
		{Name: "Movie", Slug: "movie"},
		{Name: "Book", Slug: "book"},
		{Name: "Series", Slug: "series"},
		{Name: "Game", Slug: "game"},
	}
}

// Summary counts the rows a run created.
type Summary struct {
	FictionTypes    int
	Users           int
	Tags            int
	Recommendations int
	Comments        int
	Reactions       int
}

// Seed populates db with users, tags and recommendations plus the comments
// and reactions around them. Fiction types are ensured, never duplicated.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	log := middleware.Logger
	log.InfoContext(ctx, "seeding database",
		"users", opts.NumUsers, "recommendations", opts.NumRecommendations)

	if opts.ShouldClean {
		if err := ClearAll(ctx, db); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	sum := &Summary{}
	catalog := service.NewCatalogService(repository.NewFictionTypeRepository(db), repository.NewTagRepository(db))
	created, err := catalog.EnsureFictionTypes(ctx, FictionTypes())
	if err != nil {
		return nil, fmt.Errorf("ensure fiction types: %w", err)
	}
	sum.FictionTypes = created

	fictionTypes, err := catalog.ListFictionTypes(ctx)
	if err != nil {
		return nil, err
	}

	f, err := NewFactory(db.WithContext(ctx), opts)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)

	tags, err := f.CreateTags(opts.NumTags)
	if err != nil {
		return nil, fmt.Errorf("create tags: %w", err)
	}
	sum.Tags = len(tags)

	if len(users) == 0 || len(fictionTypes) == 0 {
		return sum, nil
	}

	for i := 0; i < opts.NumRecommendations; i++ {
		author := users[f.faker.Number(0, len(users)-1)]
		ft := &fictionTypes[f.faker.Number(0, len(fictionTypes)-1)]
		rec, err := f.CreateRecommendation(author, ft, tags)
		if err != nil {
			return nil, fmt.Errorf("create recommendation: %w", err)
		}
		sum.Recommendations++

		if opts.MaxComments > 0 {
			for j := f.faker.Number(0, opts.MaxComments); j > 0; j-- {
				commenter := users[f.faker.Number(0, len(users)-1)]
				if _, err := f.CreateComment(commenter, rec); err != nil {
					return nil, fmt.Errorf("create comment: %w", err)
				}
				sum.Comments++
			}
		}

		// Each user reacts at most once, so walk a shuffled slice.
		idx := make([]int, len(users))
		for k := range idx {
			idx[k] = k
		}
		f.faker.ShuffleInts(idx)
		for _, k := range idx[:f.faker.Number(0, len(users))] {
			if _, err := f.CreateReaction(users[k], rec); err != nil {
				return nil, fmt.Errorf("create reaction: %w", err)
			}
			sum.Reactions++
		}
	}

	log.InfoContext(ctx, "seeding completed",
		"users", sum.Users, "tags", sum.Tags, "recommendations", sum.Recommendations,
		"comments", sum.Comments, "reactions", sum.Reactions)
	return sum, nil
}

// ClearAll removes every row except fiction types, children first.
func ClearAll(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&models.Reaction{},
		&models.Comment{},
		&models.RecommendationTag{},
		&models.Recommendation{},
		&models.Tag{},
		&models.User{},
	} {
		if err := tx.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
