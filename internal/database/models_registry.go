package database

import "recshelf/internal/models"

// PersistentModels returns the schema-managed models in dependency order.
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.FictionType{},
		&models.Tag{},
		&models.Recommendation{},
		&models.RecommendationTag{},
		&models.Comment{},
		&models.Reaction{},
	}
}
