package repository

import (
	"context"
	"errors"

	"recshelf/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByIDAndRecommendation(ctx context.Context, recommendationID, commentID uint) (*models.Comment, error)
	ListByRecommendation(ctx context.Context, recommendationID uint, q models.ListCommentsQuery) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewNotFoundError("Recommendation", comment.RecommendationID)
		}
		return models.WrapInternal(err)
	}
	return nil
}

// GetByIDAndRecommendation only finds the comment under the given
// recommendation; an id that lives elsewhere is reported as missing.
func (r *commentRepository) GetByIDAndRecommendation(ctx context.Context, recommendationID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND recommendation_id = ?", commentID, recommendationID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewScopedNotFoundError("Comment", commentID, "recommendation", recommendationID)
		}
		return nil, models.WrapInternal(err)
	}
	return &comment, nil
}

// ListByRecommendation orders by published (ascending unless Descending),
// ties by ascending id, then applies Offset and Limit.
func (r *commentRepository) ListByRecommendation(ctx context.Context, recommendationID uint, q models.ListCommentsQuery) ([]models.Comment, error) {
	out := []models.Comment{}
	if q.Limit != nil && *q.Limit == 0 {
		return out, nil
	}

	published := "published ASC"
	if q.Descending {
		published = "published DESC"
	}

	tx := r.db.WithContext(ctx).
		Where("recommendation_id = ?", recommendationID).
		Order(published).
		Order("id ASC")
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit != nil {
		tx = tx.Limit(*q.Limit)
	}

	if err := tx.Find(&out).Error; err != nil {
		return nil, models.WrapInternal(err)
	}
	return out, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Model(comment).
		Select("content", "updated").
		Updates(comment).Error
	if err != nil {
		return models.WrapInternal(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.WrapInternal(err)
	}
	return nil
}
