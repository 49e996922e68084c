package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/services"
	"github.com/yukikurage/taskgraph-api/internal/utils"
)

// Context keys for resources loaded from the URL
const (
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
)

// LoadProject resolves :projectId and stores the project with its members
// in the context. Ids that cannot exist are reported as not found.
func LoadProject(projectService *services.ProjectService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c.Param("projectId"))
		if !ok {
			apierrors.NotFound(c, "project-not-found")
			c.Abort()
			return
		}

		details, err := projectService.GetProject(id)
		if err != nil {
			apierrors.RespondDomainError(c, log, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyProject, *details)
		c.Next()
	}
}

// LoadTask resolves :taskId and stores the task in the context.
func LoadTask(taskService *services.TaskService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c.Param("taskId"))
		if !ok {
			apierrors.NotFound(c, "task-not-found")
			c.Abort()
			return
		}

		task, err := taskService.GetTask(id)
		if err != nil {
			apierrors.RespondDomainError(c, log, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, *task)
		c.Next()
	}
}

// GetProject returns the project stored by LoadProject
func GetProject(c *gin.Context) (services.ProjectDetails, bool) {
	value, exists := c.Get(ContextKeyProject)
	if !exists {
		return services.ProjectDetails{}, false
	}
	details, ok := value.(services.ProjectDetails)
	return details, ok
}

// GetTask returns the task stored by LoadTask
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
