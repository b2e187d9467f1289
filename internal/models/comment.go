package models

import "time"

// Comment belongs to one recommendation and is mutable only by its author.
type Comment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Content          string     `gorm:"type:text;not null" json:"content"`
	Published        time.Time  `gorm:"not null;index" json:"published"`
	Updated          *time.Time `json:"updated"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	RecommendationID uint       `gorm:"not null;index" json:"recommendation_id"`

	// Write-only belongs-to links; they exist so the schema carries the
	// foreign keys and are never loaded.
	User           *User           `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Recommendation *Recommendation `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (Comment) TableName() string { return "comment" }

type CommentCreate struct {
	Content string `json:"content" validate:"required"`
}

// CommentUpdate replaces the content. A body without content is rejected.
type CommentUpdate struct {
	Content Optional[string] `json:"content"`
}

// ListCommentsQuery drives comment listing. Ordering is by published time,
// ascending unless Descending is set, with ties broken by ascending id.
// A nil Limit returns everything after Offset.
type ListCommentsQuery struct {
	Descending bool
	Offset     int
	Limit      *int
}
