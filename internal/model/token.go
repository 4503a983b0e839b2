package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// Token is the opaque access credential handed out with an invitation.
// One token per user; the key doubles as the primary key.
type Token struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.Key == "" {
		key, err := generateTokenKey()
		if err != nil {
			return err
		}
		t.Key = key
	}
	return nil
}

// generateTokenKey returns a random 40-character hex key.
func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
