package repository

import (
	"context"
	"errors"

	"recshelf/internal/models"

	"gorm.io/gorm"
)

// FictionTypeRepository manages the fiction type reference data.
type FictionTypeRepository interface {
	List(ctx context.Context) ([]models.FictionType, error)
	GetByID(ctx context.Context, id uint) (*models.FictionType, error)
	GetBySlug(ctx context.Context, slug string) (*models.FictionType, error)
	Create(ctx context.Context, ft *models.FictionType) error
	Delete(ctx context.Context, id uint) error
}

type fictionTypeRepository struct {
	db *gorm.DB
}

func NewFictionTypeRepository(db *gorm.DB) FictionTypeRepository {
	return &fictionTypeRepository{db: db}
}

func (r *fictionTypeRepository) List(ctx context.Context) ([]models.FictionType, error) {
	var out []models.FictionType
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, models.WrapInternal(err)
	}
	return out, nil
}

func (r *fictionTypeRepository) GetByID(ctx context.Context, id uint) (*models.FictionType, error) {
	var ft models.FictionType
	if err := r.db.WithContext(ctx).First(&ft, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Fiction type", id)
		}
		return nil, models.WrapInternal(err)
	}
	return &ft, nil
}

func (r *fictionTypeRepository) GetBySlug(ctx context.Context, slug string) (*models.FictionType, error) {
	var ft models.FictionType
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&ft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.WrapInternal(err)
	}
	return &ft, nil
}

func (r *fictionTypeRepository) Create(ctx context.Context, ft *models.FictionType) error {
	if err := r.db.WithContext(ctx).Create(ft).Error; err != nil {
		return dbError(err, "Fiction type with this name or slug already exists")
	}
	return nil
}

// Delete removes the fiction type together with its recommendations.
func (r *fictionTypeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recIDs []uint
		if err := tx.Model(&models.Recommendation{}).Where("fiction_type_id = ?", id).Pluck("id", &recIDs).Error; err != nil {
			return err
		}
		if err := deleteRecommendations(tx, recIDs); err != nil {
			return err
		}

		res := tx.Delete(&models.FictionType{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Fiction type", id)
		}
		return nil
	})
	return dbError(err, "")
}

// TagRepository manages tags.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, models.WrapInternal(err)
	}
	return out, nil
}

// GetByIDs loads the requested tags and reports the first missing id.
func (r *tagRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	var found []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&found).Error; err != nil {
		return nil, models.WrapInternal(err)
	}

	have := make(map[uint]struct{}, len(found))
	for _, t := range found {
		have[t.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			return nil, models.NewNotFoundError("Tag", id)
		}
	}
	return found, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return dbError(err, "Tag with this name already exists")
	}
	return nil
}
