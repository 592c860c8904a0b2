package repository

import (
	"gorm.io/gorm"

	"vpnsub/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate finds the user by Telegram id, creating it on first contact.
// Name fields are only filled on creation; existing rows are left as-is.
func (r *UserRepository) GetOrCreate(userID, username, firstName, lastName string) (*models.User, error) {
	var user models.User
	err := r.db.Where(models.User{UserID: userID}).
		Attrs(models.User{Username: username, FirstName: firstName, LastName: lastName}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUserID(userID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
