package models

// FictionType is shared reference data such as "movie" or "book".
type FictionType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug string `gorm:"size:300;not null;uniqueIndex" json:"slug"`
}

func (FictionType) TableName() string { return "fiction_type" }

type FictionTypeCreate struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=300,slug"`
}

// Tag labels recommendations; a recommendation may carry many.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

func (Tag) TableName() string { return "tag" }

type TagCreate struct {
	Name string `json:"name" validate:"required,max=255"`
}

// RecommendationTag links a recommendation to a tag. The pair is the key.
type RecommendationTag struct {
	RecommendationID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID            uint `gorm:"primaryKey;autoIncrement:false"`
}

func (RecommendationTag) TableName() string { return "tagged_recommendations" }
