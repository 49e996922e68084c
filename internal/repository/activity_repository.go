package repository

import (
	"github.com/yukikurage/taskgraph-api/internal/database"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an entry
func (r *GormActivityRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List returns the newest entries matching the filter
func (r *GormActivityRepository) List(filter ActivityFilter) ([]models.ActivityLog, error) {
	query := r.db.Model(&models.ActivityLog{})

	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != nil {
		query = query.Where("resource_id = ?", *filter.ResourceID)
	}

	var logs []models.ActivityLog
	if err := query.Scopes(database.Newest(filter.Limit)).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
