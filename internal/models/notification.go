package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Notification is written alongside a like, comment or follow by someone other than the recipient.
type Notification struct {
	ID          string           `json:"id" gorm:"type:varchar(36);primaryKey"`
	Type        NotificationType `json:"type" gorm:"size:16;index;not null"`
	ActorID     string           `json:"actor_id" gorm:"type:varchar(36);index;not null"`
	Actor       User             `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	RecipientID string           `json:"recipient_id" gorm:"type:varchar(36);index;not null"`
	Recipient   User             `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	PostID      *string          `json:"post_id,omitempty" gorm:"type:varchar(36);index"`
	Post        *Post            `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CommentID   *string          `json:"comment_id,omitempty" gorm:"type:varchar(36);index"`
	Comment     *Comment         `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// MarkNotificationsReadRequest defines the request body for batch mark-read
type MarkNotificationsReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
}
