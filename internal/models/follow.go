package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"type:varchar(36);index;uniqueIndex:idx_follower_following;not null"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowingID string    `json:"following_id" gorm:"type:varchar(36);index;uniqueIndex:idx_follower_following;not null"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
