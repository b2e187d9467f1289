package repository

import (
	"context"
	"errors"

	"recshelf/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines persistence operations for reactions.
type ReactionRepository interface {
	GetByRecommendationAndUser(ctx context.Context, recommendationID, userID uint) (*models.Reaction, error)
	ListByRecommendation(ctx context.Context, recommendationID uint, isPositive *bool) ([]models.Reaction, error)
	Upsert(ctx context.Context, reaction *models.Reaction) (created bool, err error)
	Delete(ctx context.Context, id uint) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func reactionNotFound(recommendationID, userID uint) error {
	return models.NewScopedNotFoundError("Reaction of user", userID, "recommendation", recommendationID)
}

func (r *reactionRepository) GetByRecommendationAndUser(ctx context.Context, recommendationID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("recommendation_id = ? AND user_id = ?", recommendationID, userID).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reactionNotFound(recommendationID, userID)
		}
		return nil, models.WrapInternal(err)
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByRecommendation(ctx context.Context, recommendationID uint, isPositive *bool) ([]models.Reaction, error) {
	q := r.db.WithContext(ctx).Where("recommendation_id = ?", recommendationID)
	if isPositive != nil {
		q = q.Where("is_positive = ?", *isPositive)
	}

	out := []models.Reaction{}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, models.WrapInternal(err)
	}
	return out, nil
}

// Upsert updates the caller's existing reaction in place or inserts a new
// one. created is true only when this call inserted the row.
func (r *reactionRepository) Upsert(ctx context.Context, reaction *models.Reaction) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("recommendation_id = ? AND user_id = ?", reaction.RecommendationID, reaction.UserID).
			First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Update("is_positive", reaction.IsPositive).Error; err != nil {
				return err
			}
			*reaction = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var insErr error
		created, insErr = insertReaction(tx, reaction)
		return insErr
	})
	if err != nil {
		if isForeignKeyError(err) {
			return false, models.NewNotFoundError("Recommendation", reaction.RecommendationID)
		}
		return false, models.WrapInternal(err)
	}
	return created, nil
}

// insertReaction inserts reaction unless a row for the same user and
// recommendation appeared since the lookup. In that case the existing row
// takes the new is_positive, reaction is reloaded from it and created is false.
func insertReaction(tx *gorm.DB, reaction *models.Reaction) (bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recommendation_id"}},
		DoNothing: true,
	}).Create(reaction)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	recommendationID, userID := reaction.RecommendationID, reaction.UserID
	err := tx.Model(&models.Reaction{}).
		Where("recommendation_id = ? AND user_id = ?", recommendationID, userID).
		Update("is_positive", reaction.IsPositive).Error
	if err != nil {
		return false, err
	}
	*reaction = models.Reaction{}
	err = tx.Where("recommendation_id = ? AND user_id = ?", recommendationID, userID).First(reaction).Error
	return false, err
}

func (r *reactionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Reaction{}, id).Error; err != nil {
		return models.WrapInternal(err)
	}
	return nil
}
