package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a content item. Deleting it cascades to its comments, likes and notifications.
type Post struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index;not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content"`
	Image     string    `json:"image" gorm:"not null"`
	Comments  []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes     []Like    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"max=280"`
	ImageURL string `json:"image_url" validate:"required,url"`
}
