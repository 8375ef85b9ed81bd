package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the internal identity linked to an external (Firebase) account.
type User struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	FirebaseUID string    `json:"-" gorm:"type:varchar(128);uniqueIndex;not null"`
	Handle      string    `json:"handle" gorm:"type:varchar(64);uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio,omitempty"`
	Image       string    `json:"image,omitempty"`
	Website     string    `json:"website,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the trimmed author projection embedded in posts, comments and notifications.
type UserCompact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Image  string `json:"image,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:     u.ID,
		Name:   u.Name,
		Handle: u.Handle,
		Image:  u.Image,
	}
}

// UpdateUserRequest defines the request body for editing the caller's profile
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Bio      string `json:"bio" validate:"max=160"`
	Location string `json:"location" validate:"max=100"`
	Website  string `json:"website" validate:"omitempty,url"`
}
