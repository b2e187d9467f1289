// Package seed provides helpers to create demo data for development
// databases and tests.
package seed

import (
	"fmt"
	"strings"
	"time"

	"recshelf/internal/auth"
	"recshelf/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	hash  string
	seq   int
}

// NewFactory creates a Factory bound to db. A zero opts.RandSeed picks a
// random seed.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	hash := DemoPassword
	if !opts.SkipBcrypt {
		h, err := auth.HashPassword(DemoPassword)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		hash = h
	}
	return &Factory{
		db:    db,
		opts:  opts,
		faker: gofakeit.New(opts.RandSeed),
		hash:  hash,
	}, nil
}

// published spreads timestamps over the last MaxDays days.
func (f *Factory) published() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-back)
}

// BuildUser returns an unsaved user. Usernames carry a sequence suffix so
// they stay unique within one run.
func (f *Factory) BuildUser() *models.User {
	f.seq++
	name := strings.ToLower(f.faker.Username())
	if len(name) < 5 {
		name += "reader"
	}
	name = fmt.Sprintf("%s%d", name, f.seq)
	return &models.User{
		Username:       name,
		Email:          name + "@" + f.faker.DomainName(),
		HashedPassword: f.hash,
	}
}

func (f *Factory) CreateUser() (*models.User, error) {
	u := f.BuildUser()
	if err := f.db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// CreateTags inserts n distinct tags.
func (f *Factory) CreateTags(n int) ([]models.Tag, error) {
	seen := make(map[string]struct{}, n)
	tags := make([]models.Tag, 0, n)
	for len(tags) < n {
		name := strings.ToLower(f.faker.HipsterWord())
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("%s-%d", name, len(tags))
		}
		seen[name] = struct{}{}
		tags = append(tags, models.Tag{Name: name})
	}
	if len(tags) == 0 {
		return tags, nil
	}
	if err := f.db.Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// BuildRecommendation returns an unsaved recommendation written by author.
func (f *Factory) BuildRecommendation(author *models.User, ft *models.FictionType) *models.Recommendation {
	title := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(1, 4)), ".")
	return &models.Recommendation{
		Title:            title,
		ShortDescription: f.faker.Sentence(12),
		Opinion:          f.faker.Paragraph(1, 3, 12, " "),
		Published:        f.published(),
		UserID:           author.ID,
		FictionTypeID:    ft.ID,
	}
}

// CreateRecommendation persists a recommendation with up to three of tags.
func (f *Factory) CreateRecommendation(author *models.User, ft *models.FictionType, tags []models.Tag) (*models.Recommendation, error) {
	rec := f.BuildRecommendation(author, ft)
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("FictionType", "Tags").Create(rec).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		n := f.faker.Number(1, min(3, len(tags)))
		start := f.faker.Number(0, len(tags)-1)
		links := make([]models.RecommendationTag, 0, n)
		for i := 0; i < n; i++ {
			tag := tags[(start+i)%len(tags)]
			links = append(links, models.RecommendationTag{RecommendationID: rec.ID, TagID: tag.ID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CreateComment persists a comment published after its recommendation.
func (f *Factory) CreateComment(author *models.User, rec *models.Recommendation) (*models.Comment, error) {
	published := rec.Published.Add(time.Duration(f.faker.Number(1, 72*60)) * time.Minute)
	if now := time.Now().UTC(); published.After(now) {
		published = now
	}
	c := &models.Comment{
		Content:          f.faker.Sentence(f.faker.Number(4, 20)),
		Published:        published,
		UserID:           author.ID,
		RecommendationID: rec.ID,
	}
	if err := f.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// CreateReaction persists a reaction; three in four are positive.
func (f *Factory) CreateReaction(user *models.User, rec *models.Recommendation) (*models.Reaction, error) {
	r := &models.Reaction{
		IsPositive:       f.faker.Number(1, 4) != 1,
		UserID:           user.ID,
		RecommendationID: rec.ID,
	}
	if err := f.db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}
