package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post
type Post struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Title     string         `gorm:"uniqueIndex;not null;size:200" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`

	// Relationships
	Author User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags   []Tag `gorm:"many2many:post_tags;" json:"tags,omitempty"`
}
