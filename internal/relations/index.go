// Package relations answers structural questions about the store: project
// membership, task hierarchy and comment threads.
package relations

import (
	"fmt"
	"time"

	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

var (
	ErrProjectNotFound   = apierrors.New(apierrors.ErrNotFound, "project-not-found")
	ErrTaskNotFound      = apierrors.New(apierrors.ErrNotFound, "task-not-found")
	ErrNotAMember        = apierrors.New(apierrors.ErrNotFound, "not-a-member")
	ErrInvalidUsername   = apierrors.New(apierrors.ErrValidation, "invalid-username")
	ErrCannotRemoveOwner = apierrors.New(apierrors.ErrValidation, "cannot-remove-owner")
	ErrAlreadyMember     = apierrors.New(apierrors.ErrConflict, "already-member")
)

// Index runs its queries through a Store. An Index built on the store
// passed to a Store.Write callback takes part in that transaction.
type Index struct {
	store *repository.Store
}

func New(store *repository.Store) *Index {
	return &Index{store: store}
}

// GetMembers returns the usernames of a project's members, owner first.
func (ix *Index) GetMembers(projectID uint64) ([]string, error) {
	var usernames []string
	err := ix.store.Read(func(s *repository.Store) error {
		if _, err := findProject(s, projectID); err != nil {
			return err
		}
		members, err := s.Projects().ListMembers(projectID)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}
		usernames = make([]string, 0, len(members))
		for _, m := range members {
			usernames = append(usernames, m.Username)
		}
		return nil
	})
	return usernames, err
}

// IsMember reports whether username belongs to the project. Unknown
// projects have no members.
func (ix *Index) IsMember(projectID uint64, username string) (bool, error) {
	var ok bool
	err := ix.store.Read(func(s *repository.Store) error {
		_, err := s.Projects().FindMember(projectID, username)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("failed to find member: %w", err)
		}
		ok = true
		return nil
	})
	return ok, err
}

// AddMember appends username to the project's members.
func (ix *Index) AddMember(projectID uint64, username string) error {
	return ix.store.Write(func(tx *repository.Store) error {
		if _, err := findProject(tx, projectID); err != nil {
			return err
		}
		if _, err := tx.Users().FindByUsername(username); err != nil {
			if repository.IsNotFound(err) {
				return ErrInvalidUsername
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		_, err := tx.Projects().FindMember(projectID, username)
		if err == nil {
			return ErrAlreadyMember
		}
		if !repository.IsNotFound(err) {
			return fmt.Errorf("failed to find member: %w", err)
		}

		member := &models.ProjectMember{
			ProjectID: projectID,
			Username:  username,
			JoinedAt:  time.Now(),
		}
		if err := tx.Projects().AddMember(member); err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}
		return nil
	})
}

// RemoveMember drops username from the project. The owner can never be
// removed.
func (ix *Index) RemoveMember(projectID uint64, username string) error {
	return ix.store.Write(func(tx *repository.Store) error {
		project, err := findProject(tx, projectID)
		if err != nil {
			return err
		}
		if project.OwnerID == username {
			return ErrCannotRemoveOwner
		}

		if _, err := tx.Projects().FindMember(projectID, username); err != nil {
			if repository.IsNotFound(err) {
				return ErrNotAMember
			}
			return fmt.Errorf("failed to find member: %w", err)
		}
		if err := tx.Projects().RemoveMember(projectID, username); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		return nil
	})
}

// GetSubtasks returns the direct children of a task in creation order.
func (ix *Index) GetSubtasks(parentTaskID uint64) ([]models.Task, error) {
	var subtasks []models.Task
	err := ix.store.Read(func(s *repository.Store) error {
		if _, err := findTask(s, parentTaskID); err != nil {
			return err
		}
		var err error
		subtasks, err = s.Tasks().ListByParent(parentTaskID)
		if err != nil {
			return fmt.Errorf("failed to list subtasks: %w", err)
		}
		return nil
	})
	return subtasks, err
}

// DeleteTaskCascade deletes a task together with its direct subtasks and
// returns the deleted ids, children first. Deeper descendants are kept and
// point at a parent that no longer exists.
func (ix *Index) DeleteTaskCascade(taskID uint64) ([]uint64, error) {
	var deleted []uint64
	err := ix.store.Write(func(tx *repository.Store) error {
		if _, err := findTask(tx, taskID); err != nil {
			return err
		}
		children, err := tx.Tasks().ListByParent(taskID)
		if err != nil {
			return fmt.Errorf("failed to list subtasks: %w", err)
		}

		ids := make([]uint64, 0, len(children)+1)
		for _, child := range children {
			ids = append(ids, child.ID)
		}
		ids = append(ids, taskID)

		if err := tx.Tasks().Delete(ids...); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		deleted = ids
		return nil
	})
	return deleted, err
}

func findProject(s *repository.Store, id uint64) (*models.Project, error) {
	project, err := s.Projects().FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
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
