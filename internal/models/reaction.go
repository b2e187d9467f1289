package models

// Reaction is a thumbs up or down. A user holds at most one per recommendation.
type Reaction struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	IsPositive       bool `gorm:"not null" json:"is_positive"`
	UserID           uint `gorm:"not null;uniqueIndex:user_recommendation_uc" json:"user_id"`
	RecommendationID uint `gorm:"not null;uniqueIndex:user_recommendation_uc;index" json:"recommendation_id"`

	User           *User           `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Recommendation *Recommendation `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (Reaction) TableName() string { return "reaction" }

type ReactionCreate struct {
	IsPositive *bool `json:"is_positive" validate:"required"`
}
