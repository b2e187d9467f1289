package repository

import (
	"context"
	"errors"

	"recshelf/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationRepository defines persistence operations for recommendations.
type RecommendationRepository interface {
	GetByID(ctx context.Context, id uint, withDetails bool) (*models.Recommendation, error)
	List(ctx context.Context, filter models.RecommendationFilter) ([]models.Recommendation, error)
	Create(ctx context.Context, rec *models.Recommendation, tagIDs []uint) error
	Update(ctx context.Context, rec *models.Recommendation, tagIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("FictionType").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tag.name ASC")
	})
}

func (r *recommendationRepository) GetByID(ctx context.Context, id uint, details bool) (*models.Recommendation, error) {
	var rec models.Recommendation
	q := r.db.WithContext(ctx)
	if details {
		q = withDetails(q)
	}
	if err := q.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recommendation", id)
		}
		return nil, models.WrapInternal(err)
	}
	return &rec, nil
}

// List returns recommendations by title, ties broken by id.
func (r *recommendationRepository) List(ctx context.Context, filter models.RecommendationFilter) ([]models.Recommendation, error) {
	q := withDetails(r.db.WithContext(ctx))
	if filter.FictionTypeID != nil {
		q = q.Where("fiction_type_id = ?", *filter.FictionTypeID)
	}

	out := []models.Recommendation{}
	if err := q.Order("title ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, models.WrapInternal(err)
	}
	return out, nil
}

// Create inserts the recommendation and its tag links atomically.
func (r *recommendationRepository) Create(ctx context.Context, rec *models.Recommendation, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		return linkTags(tx, rec.ID, tagIDs)
	})
	return dbError(err, "Recommendation already exists")
}

// Update saves the editable columns. A non-nil tagIDs replaces the tag set.
func (r *recommendationRepository) Update(ctx context.Context, rec *models.Recommendation, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(rec).
			Select("title", "short_description", "opinion", "fiction_type_id", "updated").
			Omit(clause.Associations).
			Updates(rec).Error
		if err != nil {
			return err
		}
		if tagIDs == nil {
			return nil
		}
		if err := tx.Where("recommendation_id = ?", rec.ID).Delete(&models.RecommendationTag{}).Error; err != nil {
			return err
		}
		return linkTags(tx, rec.ID, tagIDs)
	})
	return dbError(err, "Recommendation already exists")
}

func (r *recommendationRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recommendation{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.NewNotFoundError("Recommendation", id)
		}
		return deleteRecommendations(tx, []uint{id})
	})
	return dbError(err, "")
}

func linkTags(tx *gorm.DB, recID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(tagIDs))
	links := make([]models.RecommendationTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, dup := seen[tagID]; dup {
			continue
		}
		seen[tagID] = struct{}{}
		links = append(links, models.RecommendationTag{RecommendationID: recID, TagID: tagID})
	}
	return tx.Create(&links).Error
}

// deleteRecommendations removes the given recommendations after their
// reactions, comments and tag links. It must run inside a transaction.
func deleteRecommendations(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("recommendation_id IN ?", ids).Delete(&models.Reaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recommendation_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recommendation_id IN ?", ids).Delete(&models.RecommendationTag{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Recommendation{}).Error
}
