package repository

import (
	"github.com/opercredits/quiz-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetOrCreateByEmail(email string, role model.Role) (*model.User, error)
	FindByID(id string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetOrCreateByEmail inserts with ON CONFLICT (email) DO NOTHING and refetches
// by the unique key, so concurrent invites to the same address resolve to a
// single row without a check-then-insert race.
func (r *userRepository) GetOrCreateByEmail(email string, role model.Role) (*model.User, error) {
	candidate := model.User{Email: email, Role: role}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	// The candidate's generated ID is stale when the insert was a no-op.
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
