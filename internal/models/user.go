// Package models contains the persisted entities, request shapes and the
// error taxonomy shared by every layer of the service.
package models

// User is an account. The password hash never leaves the process.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email          string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword string `gorm:"column:hashed_password;not null" json:"-"`
}

func (User) TableName() string { return "users" }

// UserCreate is the registration payload.
type UserCreate struct {
	Username string `json:"username" validate:"required,min=5,max=255"`
	Email    string `json:"email" validate:"required,max=255,email_strict"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserUpdate changes credentials. Both fields are non-nullable in storage,
// so an explicit null is rejected.
type UserUpdate struct {
	Username Optional[string] `json:"username"`
	Email    Optional[string] `json:"email"`
}

// Token is the /auth/token response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
