package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index;not null"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"max=500"`
}
