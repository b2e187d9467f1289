package repository

import (
	"context"
	"errors"
	"strings"

	"recshelf/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.WrapInternal(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.WrapInternal(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return dbError(err, duplicateUserMessage(err))
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).
		Select("username", "email").
		Updates(user).Error
	if err != nil {
		return dbError(err, duplicateUserMessage(err))
	}
	return nil
}

// Delete removes the user and everything hanging off them in one transaction:
// activity on their recommendations, the recommendations, then their own
// comments and reactions elsewhere.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recIDs []uint
		if err := tx.Model(&models.Recommendation{}).Where("user_id = ?", id).Pluck("id", &recIDs).Error; err != nil {
			return err
		}
		if err := deleteRecommendations(tx, recIDs); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User", id)
		}
		return nil
	})
	return dbError(err, "")
}

func duplicateUserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "email"):
		return "Duplicate email"
	case strings.Contains(msg, "username"):
		return "Duplicate username"
	default:
		return "User already exists"
	}
}
