package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can author posts
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `json:"-"`

	// Relationships
	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
