package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a closed enum; users never change role after creation.
type Role string

const (
	RoleCreator     Role = "creator"
	RoleParticipant Role = "participant"
)

type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role      Role      `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
