package repository

import (
	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository interface {
	GetOrCreateForUser(userID string) (*model.Token, error)
	FindByKey(key string) (*model.Token, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// GetOrCreateForUser returns the user's existing token or mints one. The
// unique index on user_id plus ON CONFLICT DO NOTHING keeps concurrent invites
// from issuing two credentials.
func (r *tokenRepository) GetOrCreateForUser(userID string) (*model.Token, error) {
	candidate := model.Token{UserID: userID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	var token model.Token
	if err := r.db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByKey(key string) (*model.Token, error) {
	var token model.Token
	if err := r.db.Preload("User").First(&token, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
