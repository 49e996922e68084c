package repository

import (
	"github.com/yukikurage/taskgraph-api/internal/database"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter in creation order
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{})

	// Apply filters
	if filter.Username != "" {
		query = query.Where("assignee_id = ? OR created_by = ?", filter.Username, filter.Username)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.RootsOnly {
		query = query.Where("parent_task_id IS NULL")
	}

	var tasks []models.Task
	if err := query.Scopes(database.CreationOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByParent lists the direct subtasks of a task
func (r *GormTaskRepository) ListByParent(parentTaskID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("parent_task_id = ?", parentTaskID).
		Scopes(database.CreationOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes tasks by ID
func (r *GormTaskRepository) Delete(ids ...uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&models.Task{}, ids).Error
}
