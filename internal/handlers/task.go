package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/taskgraph-api/internal/dto"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/middleware"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/services"
	"github.com/yukikurage/taskgraph-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         zerolog.Logger
}

func NewTaskHandler(taskService *services.TaskService, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks returns the tasks the current user created or is assigned to
// Can filter by projectId, status and priority; rootsOnly=true drops subtasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := utils.OptionalID(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "invalid-project-id")
		return
	}

	input := services.ListTasksInput{
		ProjectID: projectID,
		RootsOnly: c.Query("rootsOnly") == "true",
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		input.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		input.Priority = &p
	}

	tasks, err := h.taskService.ListTasksByUser(username, input)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetTask returns a specific task by ID
// Task is already loaded by LoadTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		apierrors.BadRequest(c, "required-title")
		return
	}
	if req.ProjectID == nil {
		apierrors.BadRequest(c, "required-project")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.Assignee,
		CreatedBy:      username,
		ParentTaskID:   req.ParentTaskID,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate.Ptr(),
		Tags:           req.Tags,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// UpdateTask updates the fields present in the request body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}

	// Parse raw JSON to tell an absent dueDate from one sent as null or ""
	var rawReq map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawReq); err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}
	_, dueDateSent := rawReq["dueDate"]
	dueDate := req.DueDate.Ptr()
	clearDueDate := dueDateSent && dueDate == nil

	updated, err := h.taskService.UpdateTask(username, task.ID, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        dueDate,
		ClearDueDate:   clearDueDate,
		Tags:           req.Tags,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": updated})
}

// DeleteTask deletes a task and its direct subtasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	deleted, err := h.taskService.DeleteTask(username, task.ID)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "task-deleted",
		"deleted": deleted,
	})
}

// ListSubtasks returns the direct children of a task
func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	subtasks, err := h.taskService.GetSubtasks(task.ID)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtasks": subtasks})
}

// GetParentTask returns the parent of a task, or null for a top-level task
func (h *TaskHandler) GetParentTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	parent, err := h.taskService.GetParentTask(task.ID)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parent": parent})
}
