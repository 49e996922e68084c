package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskgraph-api/internal/constants"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relations"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

var (
	ErrProjectNotFound = relations.ErrProjectNotFound
	ErrNotProjectOwner = apierrors.New(apierrors.ErrForbidden, "not-project-owner")
)

var projectCodes = validationCodes{
	"Name.notblank": "required-name",
}

// ProjectService provides business logic for projects and their members.
type ProjectService struct {
	store *repository.Store
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store *repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

// ProjectDetails is a project together with its member usernames, owner first.
type ProjectDetails struct {
	Project models.Project
	Members []string
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	OwnerID     string
	Name        string `validate:"notblank"`
	Description string
	Color       string
}

// CreateProject creates a project and makes the owner its first member.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*ProjectDetails, error) {
	if err := check(input, projectCodes); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = constants.DefaultProjectColor
	}

	var details *ProjectDetails
	err := s.store.Write(func(tx *repository.Store) error {
		now := time.Now()
		project := &models.Project{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Color:       color,
			OwnerID:     input.OwnerID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Projects().Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		owner := &models.ProjectMember{
			ProjectID: project.ID,
			Username:  input.OwnerID,
			JoinedAt:  now,
		}
		if err := tx.Projects().AddMember(owner); err != nil {
			return fmt.Errorf("failed to add owner to project: %w", err)
		}

		if _, err := record(tx, models.ActivityLog{
			Username:     input.OwnerID,
			Action:       models.ActionCreated,
			ResourceType: models.ResourceProject,
			ResourceID:   project.ID,
			ResourceName: project.Name,
		}); err != nil {
			return err
		}

		details = &ProjectDetails{Project: *project, Members: []string{input.OwnerID}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// GetProject returns a project and its members.
func (s *ProjectService) GetProject(id uint64) (*ProjectDetails, error) {
	var details *ProjectDetails
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		details, err = loadProjectDetails(r, id)
		return err
	})
	return details, err
}

// ListProjectsByUser returns the projects username owns or is a member of.
func (s *ProjectService) ListProjectsByUser(username string) ([]ProjectDetails, error) {
	var result []ProjectDetails
	err := s.store.Read(func(r *repository.Store) error {
		projects, err := r.Projects().ListByUser(username)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		index := relations.New(r)
		result = make([]ProjectDetails, 0, len(projects))
		for _, project := range projects {
			members, err := index.GetMembers(project.ID)
			if err != nil {
				return err
			}
			result = append(result, ProjectDetails{Project: project, Members: members})
		}
		return nil
	})
	return result, err
}

// UpdateProjectInput holds the fields to change; nil fields are kept.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Color       *string
	IsArchived  *bool
}

func (in UpdateProjectInput) details() map[string]any {
	d := map[string]any{}
	if in.Name != nil {
		d["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		d["description"] = *in.Description
	}
	if in.Color != nil {
		d["color"] = *in.Color
	}
	if in.IsArchived != nil {
		d["isArchived"] = *in.IsArchived
	}
	return d
}

// UpdateProject applies input on behalf of actor, who must own the project.
// A blank name leaves the current name in place.
func (s *ProjectService) UpdateProject(actor string, id uint64, input UpdateProjectInput) (*ProjectDetails, error) {
	var details *ProjectDetails
	err := s.store.Write(func(tx *repository.Store) error {
		project, err := findOwnedProject(tx, id, actor, ErrAuthInsufficient)
		if err != nil {
			return err
		}

		if input.Name != nil && !isBlank(*input.Name) {
			project.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			project.Description = *input.Description
		}
		if input.Color != nil && *input.Color != "" {
			project.Color = *input.Color
		}
		if input.IsArchived != nil {
			project.IsArchived = *input.IsArchived
		}
		project.UpdatedAt = time.Now()

		if err := tx.Projects().Update(project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		if _, err := record(tx, models.ActivityLog{
			Username:     actor,
			Action:       models.ActionUpdated,
			ResourceType: models.ResourceProject,
			ResourceID:   project.ID,
			ResourceName: project.Name,
			Details:      input.details(),
		}); err != nil {
			return err
		}

		details, err = loadProjectDetails(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// DeleteProject removes a project and its membership list. Tasks keep their
// project id.
func (s *ProjectService) DeleteProject(actor string, id uint64) error {
	return s.store.Write(func(tx *repository.Store) error {
		project, err := findOwnedProject(tx, id, actor, ErrAuthInsufficient)
		if err != nil {
			return err
		}

		if _, err := record(tx, models.ActivityLog{
			Username:     actor,
			Action:       models.ActionDeleted,
			ResourceType: models.ResourceProject,
			ResourceID:   project.ID,
			ResourceName: project.Name,
		}); err != nil {
			return err
		}

		if err := tx.Projects().Delete(id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
}

// GetMembers lists a project's members, owner first.
func (s *ProjectService) GetMembers(id uint64) ([]string, error) {
	return relations.New(s.store).GetMembers(id)
}

// AddMember adds username to the project on behalf of its owner and returns
// the new member list.
func (s *ProjectService) AddMember(actor string, id uint64, username string) ([]string, error) {
	var members []string
	err := s.store.Write(func(tx *repository.Store) error {
		if _, err := findOwnedProject(tx, id, actor, ErrNotProjectOwner); err != nil {
			return err
		}

		index := relations.New(tx)
		if err := index.AddMember(id, username); err != nil {
			return err
		}

		var err error
		members, err = index.GetMembers(id)
		return err
	})
	return members, err
}

// RemoveMember removes username from the project on behalf of its owner and
// returns the remaining member list.
func (s *ProjectService) RemoveMember(actor string, id uint64, username string) ([]string, error) {
	var members []string
	err := s.store.Write(func(tx *repository.Store) error {
		if _, err := findOwnedProject(tx, id, actor, ErrNotProjectOwner); err != nil {
			return err
		}

		index := relations.New(tx)
		if err := index.RemoveMember(id, username); err != nil {
			return err
		}

		var err error
		members, err = index.GetMembers(id)
		return err
	})
	return members, err
}

func findOwnedProject(s *repository.Store, id uint64, actor string, denied error) (*models.Project, error) {
	project, err := s.Projects().FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.OwnerID != actor {
		return nil, denied
	}
	return project, nil
}

func loadProjectDetails(s *repository.Store, id uint64) (*ProjectDetails, error) {
	project, err := s.Projects().FindByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := relations.New(s).GetMembers(id)
	if err != nil {
		return nil, err
	}
	return &ProjectDetails{Project: *project, Members: members}, nil
}
