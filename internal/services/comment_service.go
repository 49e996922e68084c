package services

import (
	"fmt"
	"time"

	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relations"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

var (
	ErrCommentNotFound       = apierrors.New(apierrors.ErrNotFound, "comment-not-found")
	ErrParentCommentNotFound = apierrors.New(apierrors.ErrReferential, "parent-comment-not-found")
	ErrContentRequired       = apierrors.New(apierrors.ErrValidation, "required-content")
	ErrNotCommentAuthor      = ErrAuthInsufficient
)

// CommentService handles comments on tasks.
type CommentService struct {
	store *repository.Store
}

// NewCommentService creates a new CommentService.
func NewCommentService(store *repository.Store) *CommentService {
	return &CommentService{store: store}
}

// CreateCommentInput represents a new comment or reply.
type CreateCommentInput struct {
	TaskID          uint64
	UserID          string
	Content         string
	ParentCommentID *uint64
}

// CreateComment adds a comment to a task. The parent comment, when given,
// may belong to any task.
func (s *CommentService) CreateComment(input CreateCommentInput) (*models.Comment, error) {
	if isBlank(input.Content) {
		return nil, ErrContentRequired
	}

	var comment *models.Comment
	err := s.store.Write(func(tx *repository.Store) error {
		task, err := findTask(tx, input.TaskID)
		if err != nil {
			return err
		}

		if input.ParentCommentID != nil {
			if _, err := tx.Comments().FindByID(*input.ParentCommentID); err != nil {
				if repository.IsNotFound(err) {
					return ErrParentCommentNotFound
				}
				return fmt.Errorf("failed to find parent comment: %w", err)
			}
		}

		now := time.Now()
		comment = &models.Comment{
			TaskID:          input.TaskID,
			UserID:          input.UserID,
			Content:         input.Content,
			ParentCommentID: input.ParentCommentID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Comments().Create(comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		_, err = record(tx, models.ActivityLog{
			Username:     input.UserID,
			Action:       models.ActionCommented,
			ResourceType: models.ResourceTask,
			ResourceID:   task.ID,
			ResourceName: task.Title,
			Details: map[string]any{
				"commentId":       comment.ID,
				"parentCommentId": input.ParentCommentID,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment returns a comment by id.
func (s *CommentService) GetComment(id uint64) (*models.Comment, error) {
	var comment *models.Comment
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		comment, err = findComment(r, id)
		return err
	})
	return comment, err
}

// UpdateComment replaces the content of actor's own comment.
func (s *CommentService) UpdateComment(actor string, id uint64, content string) (*models.Comment, error) {
	if isBlank(content) {
		return nil, ErrContentRequired
	}

	var comment *models.Comment
	err := s.store.Write(func(tx *repository.Store) error {
		var err error
		comment, err = findComment(tx, id)
		if err != nil {
			return err
		}
		if comment.UserID != actor {
			return ErrNotCommentAuthor
		}

		comment.Content = content
		comment.UpdatedAt = time.Now()
		if err := tx.Comments().Update(comment); err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}

		_, err = record(tx, models.ActivityLog{
			Username:     actor,
			Action:       models.ActionUpdated,
			ResourceType: models.ResourceComment,
			ResourceID:   comment.ID,
			Details:      map[string]any{"taskId": comment.TaskID},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes actor's own comment. Replies keep pointing at it.
func (s *CommentService) DeleteComment(actor string, id uint64) error {
	return s.store.Write(func(tx *repository.Store) error {
		comment, err := findComment(tx, id)
		if err != nil {
			return err
		}
		if comment.UserID != actor {
			return ErrNotCommentAuthor
		}

		if err := tx.Comments().Delete(id); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		_, err = record(tx, models.ActivityLog{
			Username:     actor,
			Action:       models.ActionDeleted,
			ResourceType: models.ResourceComment,
			ResourceID:   comment.ID,
			Details:      map[string]any{"taskId": comment.TaskID},
		})
		return err
	})
}

// ListCommentsByTask returns a task's comments in creation order.
func (s *CommentService) ListCommentsByTask(taskID uint64) ([]models.Comment, error) {
	return s.list(func(r *repository.Store) ([]models.Comment, error) {
		if _, err := findTask(r, taskID); err != nil {
			return nil, err
		}
		return r.Comments().ListByTask(taskID)
	})
}

// ListCommentsByUser returns every comment written by username.
func (s *CommentService) ListCommentsByUser(username string) ([]models.Comment, error) {
	return s.list(func(r *repository.Store) ([]models.Comment, error) {
		return r.Comments().ListByUser(username)
	})
}

// ListReplies returns the direct replies to a comment.
func (s *CommentService) ListReplies(commentID uint64) ([]models.Comment, error) {
	return s.list(func(r *repository.Store) ([]models.Comment, error) {
		if _, err := findComment(r, commentID); err != nil {
			return nil, err
		}
		return r.Comments().ListReplies(commentID)
	})
}

// GetCommentTree returns a task's comments as reply threads.
func (s *CommentService) GetCommentTree(taskID uint64) ([]*relations.CommentNode, error) {
	return relations.New(s.store).GetCommentTree(taskID)
}

func (s *CommentService) list(query func(r *repository.Store) ([]models.Comment, error)) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		comments, err = query(r)
		if err != nil {
			if _, ok := err.(*apierrors.Error); ok {
				return err
			}
			return fmt.Errorf("failed to list comments: %w", err)
		}
		return nil
	})
	return comments, err
}

func findComment(s *repository.Store, id uint64) (*models.Comment, error) {
	comment, err := s.Comments().FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}
