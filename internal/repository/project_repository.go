package repository

import (
	"github.com/yukikurage/taskgraph-api/internal/database"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByUser lists projects the user owns or is a member of
func (r *GormProjectRepository) ListByUser(username string) ([]models.Project, error) {
	memberOf := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("username = ?", username)

	var projects []models.Project
	if err := r.db.
		Where("owner_id = ? OR id IN (?)", username, memberOf).
		Scopes(database.CreationOrder).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and its membership rows in a transaction.
// Tasks that reference the project are left as they are.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(projectID uint64, username string) error {
	return r.db.Where("project_id = ? AND username = ?", projectID, username).
		Delete(&models.ProjectMember{}).Error
}

// FindMember finds a specific project member
func (r *GormProjectRepository) FindMember(projectID uint64, username string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND username = ?", projectID, username).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a project in join order
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.
		Where("project_id = ?", projectID).
		Scopes(database.CreationOrder).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
