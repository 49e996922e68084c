package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/taskgraph-api/internal/dto"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/middleware"
	"github.com/yukikurage/taskgraph-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	log            zerolog.Logger
}

func NewProjectHandler(projectService *services.ProjectService, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// ListProjects returns the projects the current user owns or belongs to
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListProjectsByUser(username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "required-name")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		OwnerID:     username,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// GetProject returns a project to its members
// Project is already loaded by LoadProject middleware
func (h *ProjectHandler) GetProject(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if !isMember(project, username) {
		apierrors.Forbidden(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(project)})
}

// UpdateProject updates a project; only the owner may do so
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		Status      *string `json:"status"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}

	input := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if req.Status != nil {
		archived := *req.Status == dto.ProjectStatusArchived
		input.IsArchived = &archived
	}

	updated, err := h.projectService.UpdateProject(username, project.Project.ID, input)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*updated)})
}

// DeleteProject deletes a project; only the owner may do so
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(username, project.Project.ID); err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project-deleted"})
}

// ListMembers returns the member usernames of a project, owner first
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": project.Members})
}

// AddMember adds a user to a project
func (h *ProjectHandler) AddMember(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req usernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid-username")
		return
	}

	members, err := h.projectService.AddMember(username, project.Project.ID, req.Username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MembersResponse{Success: true, Members: members})
}

// RemoveMember removes a user from a project
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	members, err := h.projectService.RemoveMember(username, project.Project.ID, c.Param("username"))
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MembersResponse{Success: true, Members: members})
}

func isMember(project services.ProjectDetails, username string) bool {
	if project.Project.OwnerID == username {
		return true
	}
	for _, m := range project.Members {
		if m == username {
			return true
		}
	}
	return false
}
