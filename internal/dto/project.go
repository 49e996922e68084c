package dto

import (
	"time"

	"github.com/yukikurage/taskgraph-api/internal/services"
)

// Project statuses as exposed by the API
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Owner       string    `json:"owner"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Members     []string  `json:"members"`
}

// MembersResponse is returned after a membership change
type MembersResponse struct {
	Success bool     `json:"success"`
	Members []string `json:"members"`
}

// ToProjectDTO converts a project with its members to ProjectDTO
func ToProjectDTO(details services.ProjectDetails) ProjectDTO {
	status := ProjectStatusActive
	if details.Project.IsArchived {
		status = ProjectStatusArchived
	}

	members := details.Members
	if members == nil {
		members = []string{}
	}

	return ProjectDTO{
		ID:          details.Project.ID,
		Name:        details.Project.Name,
		Description: details.Project.Description,
		Color:       details.Project.Color,
		Owner:       details.Project.OwnerID,
		Status:      status,
		CreatedAt:   details.Project.CreatedAt,
		UpdatedAt:   details.Project.UpdatedAt,
		Members:     members,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []services.ProjectDetails) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
