package models

import "time"

// Recommendation is a user's write-up of a piece of fiction.
// FictionType and Tags are only filled when loaded with details.
type Recommendation struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	Title            string       `gorm:"size:255;not null;index" json:"title"`
	ShortDescription string       `gorm:"not null" json:"short_description"`
	Opinion          string       `gorm:"type:text;not null" json:"opinion"`
	Published        time.Time    `gorm:"not null" json:"published"`
	Updated          *time.Time   `json:"updated"`
	UserID           uint         `gorm:"not null;index" json:"user_id"`
	User             *User        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	FictionTypeID    uint         `gorm:"not null;index" json:"fiction_type_id"`
	FictionType      *FictionType `gorm:"foreignKey:FictionTypeID" json:"fiction_type,omitempty"`
	Tags             []Tag        `gorm:"many2many:tagged_recommendations" json:"tags,omitempty"`
}

func (Recommendation) TableName() string { return "recommendation" }

type RecommendationCreate struct {
	Title            string `json:"title" validate:"required,max=255"`
	ShortDescription string `json:"short_description" validate:"required"`
	Opinion          string `json:"opinion" validate:"required"`
	FictionTypeID    uint   `json:"fiction_type_id" validate:"required"`
	TagIDs           []uint `json:"tag_ids" validate:"required,min=1,dive,required"`
}

// RecommendationUpdate is a partial update; only present fields change.
type RecommendationUpdate struct {
	Title            Optional[string] `json:"title"`
	ShortDescription Optional[string] `json:"short_description"`
	Opinion          Optional[string] `json:"opinion"`
	FictionTypeID    Optional[uint]   `json:"fiction_type_id"`
	TagIDs           Optional[[]uint] `json:"tag_ids"`
}

// RecommendationFilter narrows List. A nil FictionTypeID lists everything.
type RecommendationFilter struct {
	FictionTypeID *uint
}
