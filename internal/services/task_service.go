package services

import (
	"fmt"
	"strings"
	"time"

	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relations"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

var (
	ErrTaskNotFound         = relations.ErrTaskNotFound
	ErrParentTaskNotFound   = apierrors.New(apierrors.ErrReferential, "parent-task-not-found")
	ErrTitleRequired        = apierrors.New(apierrors.ErrValidation, "required-title")
	ErrInvalidStatus        = apierrors.New(apierrors.ErrValidation, "invalid-status")
	ErrInvalidPriority      = apierrors.New(apierrors.ErrValidation, "invalid-priority")
	ErrTaskPermissionDenied = ErrAuthInsufficient
)

var taskCodes = validationCodes{
	"Title.notblank":     "required-title",
	"Status.oneof":       "invalid-status",
	"Priority.oneof":     "invalid-priority",
	"CreatedBy.required": "required-username",
}

// TaskService handles task business logic
type TaskService struct {
	store *repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string `validate:"notblank"`
	Description    string
	ProjectID      *uint64
	AssigneeID     string
	CreatedBy      string `validate:"required"`
	ParentTaskID   *uint64
	Status         models.TaskStatus   `validate:"omitempty,oneof=pending in-progress completed"`
	Priority       models.TaskPriority `validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time
	Tags           []string
	EstimatedHours *float64
	ActualHours    *float64
}

// UpdateTaskInput represents input for updating a task. Nil fields are kept.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	ProjectID      *uint64
	AssigneeID     *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	DueDate        *time.Time
	ClearDueDate   bool
	Tags           []string
	EstimatedHours *float64
	ActualHours    *float64
}

// ListTasksInput represents filters for listing a user's tasks
type ListTasksInput struct {
	ProjectID *uint64
	Status    *models.TaskStatus
	Priority  *models.TaskPriority
	// RootsOnly keeps only tasks without a parent.
	RootsOnly bool
}

// CreateTask creates a task. Status defaults to pending, priority to medium
// and the assignee to the creator. A parent task must exist; the project is
// not checked.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := check(input, taskCodes); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.AssigneeID == "" {
		input.AssigneeID = input.CreatedBy
	}
	if input.Tags == nil {
		input.Tags = []string{}
	}

	var task *models.Task
	err := s.store.Write(func(tx *repository.Store) error {
		if input.ParentTaskID != nil {
			if _, err := tx.Tasks().FindByID(*input.ParentTaskID); err != nil {
				if repository.IsNotFound(err) {
					return ErrParentTaskNotFound
				}
				return fmt.Errorf("failed to find parent task: %w", err)
			}
		}

		now := time.Now()
		task = &models.Task{
			Title:          strings.TrimSpace(input.Title),
			Description:    input.Description,
			ProjectID:      input.ProjectID,
			AssigneeID:     input.AssigneeID,
			CreatedBy:      input.CreatedBy,
			ParentTaskID:   input.ParentTaskID,
			Status:         input.Status,
			Priority:       input.Priority,
			DueDate:        input.DueDate,
			Tags:           input.Tags,
			EstimatedHours: input.EstimatedHours,
			ActualHours:    input.ActualHours,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := tx.Tasks().Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		_, err := record(tx, models.ActivityLog{
			Username:     input.CreatedBy,
			Action:       models.ActionCreated,
			ResourceType: models.ResourceTask,
			ResourceID:   task.ID,
			ResourceName: task.Title,
			Details: map[string]any{
				"projectId":    input.ProjectID,
				"parentTaskId": input.ParentTaskID,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask returns a task by id
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	var task *models.Task
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		task, err = findTask(r, taskID)
		return err
	})
	return task, err
}

// UpdateTask applies input on behalf of actor, who must be the task's
// creator or assignee. completedAt is stamped only when the status moves to
// completed from another status.
func (s *TaskService) UpdateTask(actor string, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if err := validateTaskUpdate(input); err != nil {
		return nil, err
	}

	var task *models.Task
	err := s.store.Write(func(tx *repository.Store) error {
		var err error
		task, err = findTask(tx, taskID)
		if err != nil {
			return err
		}
		if task.CreatedBy != actor && task.AssigneeID != actor {
			return ErrTaskPermissionDenied
		}

		details := applyTaskUpdate(task, input, time.Now())
		if err := tx.Tasks().Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		_, err = record(tx, models.ActivityLog{
			Username:     actor,
			Action:       models.ActionUpdated,
			ResourceType: models.ResourceTask,
			ResourceID:   task.ID,
			ResourceName: task.Title,
			Details:      details,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func validateTaskUpdate(input UpdateTaskInput) error {
	if input.Title != nil && isBlank(*input.Title) {
		return ErrTitleRequired
	}
	if input.Status != nil && !input.Status.IsValid() {
		return ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// applyTaskUpdate mutates task and returns the activity details of the
// change.
func applyTaskUpdate(task *models.Task, input UpdateTaskInput, now time.Time) map[string]any {
	details := map[string]any{}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
		details["title"] = task.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
		details["description"] = task.Description
	}
	if input.ProjectID != nil {
		task.ProjectID = input.ProjectID
		details["projectId"] = *input.ProjectID
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
		details["assigneeId"] = task.AssigneeID
	}
	if input.Status != nil {
		prev := task.Status
		task.Status = *input.Status
		details["status"] = task.Status
		if prev != task.Status {
			details["statusChange"] = fmt.Sprintf("%s → %s", prev, task.Status)
		}
		if task.Status == models.TaskStatusCompleted && prev != models.TaskStatusCompleted {
			completedAt := now
			task.CompletedAt = &completedAt
		}
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
		details["priority"] = task.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
		details["dueDate"] = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
		details["dueDate"] = *input.DueDate
	}
	if input.Tags != nil {
		task.Tags = input.Tags
		details["tags"] = input.Tags
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
		details["estimatedHours"] = *input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = input.ActualHours
		details["actualHours"] = *input.ActualHours
	}

	task.UpdatedAt = now
	return details
}

// DeleteTask removes a task and its direct subtasks on behalf of its
// creator and returns the deleted ids.
func (s *TaskService) DeleteTask(actor string, taskID uint64) ([]uint64, error) {
	var deleted []uint64
	err := s.store.Write(func(tx *repository.Store) error {
		task, err := findTask(tx, taskID)
		if err != nil {
			return err
		}
		if task.CreatedBy != actor {
			return ErrTaskPermissionDenied
		}

		if _, err := record(tx, models.ActivityLog{
			Username:     actor,
			Action:       models.ActionDeleted,
			ResourceType: models.ResourceTask,
			ResourceID:   task.ID,
			ResourceName: task.Title,
			Details:      map[string]any{"projectId": task.ProjectID},
		}); err != nil {
			return err
		}

		deleted, err = relations.New(tx).DeleteTaskCascade(taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// ListTasksByUser returns the tasks username created or is assigned to, in
// creation order.
func (s *TaskService) ListTasksByUser(username string, input ListTasksInput) ([]models.Task, error) {
	return s.list(repository.TaskFilter{
		Username:  username,
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Priority:  input.Priority,
		RootsOnly: input.RootsOnly,
	})
}

func (s *TaskService) list(filter repository.TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		tasks, err = r.Tasks().List(filter)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	return tasks, err
}

// GetSubtasks lists the direct children of a task.
func (s *TaskService) GetSubtasks(taskID uint64) ([]models.Task, error) {
	return relations.New(s.store).GetSubtasks(taskID)
}

// GetParentTask returns the parent of a task, or nil when the task has no
// parent or the parent no longer exists.
func (s *TaskService) GetParentTask(taskID uint64) (*models.Task, error) {
	var parent *models.Task
	err := s.store.Read(func(r *repository.Store) error {
		task, err := findTask(r, taskID)
		if err != nil {
			return err
		}
		if task.ParentTaskID == nil {
			return nil
		}

		parent, err = r.Tasks().FindByID(*task.ParentTaskID)
		if err != nil {
			parent = nil
			if repository.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("failed to find parent task: %w", err)
		}
		return nil
	})
	return parent, err
}

func findTask(s *repository.Store, id uint64) (*models.Task, error) {
	task, err := s.Tasks().FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
