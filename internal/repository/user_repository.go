package repository

import (
	"github.com/yukikurage/taskgraph-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user in registration order
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at ASC").Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update saves all fields of a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
