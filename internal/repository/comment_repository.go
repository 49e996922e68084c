package repository

import (
	"github.com/yukikurage/taskgraph-api/internal/database"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) ListByTask(taskID uint64) ([]models.Comment, error) {
	return r.list(r.db.Where("task_id = ?", taskID))
}

func (r *GormCommentRepository) ListByUser(username string) ([]models.Comment, error) {
	return r.list(r.db.Where("user_id = ?", username))
}

func (r *GormCommentRepository) ListReplies(commentID uint64) ([]models.Comment, error) {
	return r.list(r.db.Where("parent_comment_id = ?", commentID))
}

func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete removes a single comment; replies keep their parent id.
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *GormCommentRepository) list(query *gorm.DB) ([]models.Comment, error) {
	var comments []models.Comment
	if err := query.Scopes(database.CreationOrder).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
