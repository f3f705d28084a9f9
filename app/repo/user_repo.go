package repo

import (
	"grokmemehub/app/models"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(u *models.User) error { return r.db.Create(u).Error }

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByUsernameOrEmail(username, email string) (int64, error) {
	var count int64
	return count, r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
}

// UpdateLocation writes both coordinates together so a row never ends up
// with only one of the pair set.
func (r *UserRepository) UpdateLocation(id uint, lat, long float64) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"location_lat": lat, "location_long": long}).Error
}
